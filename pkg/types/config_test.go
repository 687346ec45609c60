package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty root returns ErrRootEmpty",
			config:  Config{Root: ""},
			wantErr: ErrRootEmpty,
		},
		{
			name:    "unknown policy returns ErrOnInvalidUnknown",
			config:  Config{Root: "/tmp/data", OnInvalid: "ignore"},
			wantErr: ErrOnInvalidUnknown,
		},
		{
			name:    "default policy is valid",
			config:  Config{Root: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "skip policy is valid",
			config:  Config{Root: "/tmp/data", OnInvalid: OnInvalidSkip},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.config.Root == "" && !errors.Is(err, ErrRootNotFound) {
				t.Fatalf("expected empty root to wrap %v, got %v", ErrRootNotFound, err)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigSkipInvalid(t *testing.T) {
	if (Config{Root: "x"}).SkipInvalid() {
		t.Error("default policy should abort")
	}
	if !(Config{Root: "x", OnInvalid: OnInvalidSkip}).SkipInvalid() {
		t.Error("skip policy should skip")
	}
}
