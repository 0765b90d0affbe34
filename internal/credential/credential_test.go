package credential

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

// These tests replace the global keyring provider and set environment
// variables, so they do not run in parallel.

func TestStoreLoadDelete(t *testing.T) {
	keyring.MockInit()

	if key, err := Load(); err != nil || key != "" {
		t.Fatalf("Load() on empty keyring = %q, %v", key, err)
	}

	if err := Store("  local-key  "); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	key, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if key != "local-key" {
		t.Errorf("Load() = %q, want %q", key, "local-key")
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := Delete(); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
	if key, _ := Load(); key != "" {
		t.Errorf("expected key to be gone, got %q", key)
	}
}

func TestStore_Empty(t *testing.T) {
	keyring.MockInit()

	if err := Store("   "); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		stored     string
		wantKey    string
		wantSource Source
	}{
		{name: "flag wins", flag: "from-flag", env: "from-env", stored: "from-keyring", wantKey: "from-flag", wantSource: SourceFlag},
		{name: "env before keyring", env: "from-env", stored: "from-keyring", wantKey: "from-env", wantSource: SourceEnv},
		{name: "keyring fallback", stored: "from-keyring", wantKey: "from-keyring", wantSource: SourceKeyring},
		{name: "nothing configured", wantSource: SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyring.MockInit()
			t.Setenv(EnvAPIKey, tt.env)
			if tt.stored != "" {
				if err := Store(tt.stored); err != nil {
					t.Fatalf("Store() error = %v", err)
				}
			}

			key, source, err := ResolveAPIKey(tt.flag)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tt.wantKey || source != tt.wantSource {
				t.Errorf("ResolveAPIKey(%q) = %q, %s; want %q, %s", tt.flag, key, source, tt.wantKey, tt.wantSource)
			}
		})
	}
}

func TestResolveAPIKey_KeyringError(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Setenv(EnvAPIKey, "")

	key, source, err := ResolveAPIKey("")
	if err == nil {
		t.Fatal("expected keyring error")
	}
	if key != "" || source != SourceNone {
		t.Errorf("expected no key, got %q from %s", key, source)
	}
}
