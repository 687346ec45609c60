// Command datastore inspects and edits a file-backed datastore.
package main

import "github.com/simonemmott/datastore/internal/cli"

func main() {
	cli.Execute()
}
