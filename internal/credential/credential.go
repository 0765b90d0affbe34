// Package credential stores the LLM API key in the operating system keyring
// and resolves the key to use for a run.
package credential

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service name.
	Service = "trustguard"

	// User is the keyring account holding the LLM API key.
	User = "llm_api_key"

	// EnvAPIKey is the environment variable checked before the keyring.
	EnvAPIKey = "TRUSTGUARD_LLM_API_KEY"
)

// ErrEmptyKey is returned when an empty key is stored.
var ErrEmptyKey = errors.New("api key is empty")

// Source tells where a resolved key came from.
type Source string

// Key sources, in resolution order.
const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
	SourceNone    Source = "none"
)

// Store saves key in the keyring.
func Store(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if err := keyring.Set(Service, User, key); err != nil {
		return fmt.Errorf("failed to store api key in keyring: %w", err)
	}
	return nil
}

// Load returns the stored key. A missing entry is not an error and
// yields an empty string.
func Load() (string, error) {
	key, err := keyring.Get(Service, User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read api key from keyring: %w", err)
	}
	return key, nil
}

// Delete removes the stored key. Deleting a missing key succeeds.
func Delete() error {
	if err := keyring.Delete(Service, User); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete api key from keyring: %w", err)
	}
	return nil
}

// ResolveAPIKey picks the key from the flag value, then the environment,
// then the keyring. Keyring failures are returned so the caller can warn,
// but they never stop an analysis; a local model usually needs no key.
func ResolveAPIKey(flagValue string) (string, Source, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, SourceFlag, nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v, SourceEnv, nil
	}
	key, err := Load()
	if err != nil {
		return "", SourceNone, err
	}
	if key != "" {
		return key, SourceKeyring, nil
	}
	return "", SourceNone, nil
}
