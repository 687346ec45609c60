package types

import (
	"errors"
	"fmt"
)

// Config holds the root directory and loading policy for opening a Store.
type Config struct {
	Root      string `json:"root" yaml:"root"`
	OnInvalid string `json:"on_invalid" yaml:"on_invalid"`
}

// Policies for a sub-directory whose descriptor or records cannot be loaded.
const (
	OnInvalidAbort = "abort"
	OnInvalidSkip  = "skip"
)

// Config validation errors.
var (
	ErrRootEmpty        = errors.New("root must not be empty")
	ErrOnInvalidUnknown = errors.New("unknown invalid-descriptor policy")
)

// knownPolicies lists the policies that Validate accepts.
var knownPolicies = map[string]bool{
	"":             true,
	OnInvalidAbort: true,
	OnInvalidSkip:  true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty root also wraps ErrRootNotFound.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: %w", ErrRootNotFound, ErrRootEmpty)
	}
	if !knownPolicies[c.OnInvalid] {
		return ErrOnInvalidUnknown
	}
	return nil
}

// SkipInvalid reports whether collections that fail to load are skipped
// rather than failing the whole open.
func (c Config) SkipInvalid() bool {
	return c.OnInvalid == OnInvalidSkip
}
