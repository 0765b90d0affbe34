package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/trustguard/internal/credential"
)

// NewAuthCmd creates the auth command group.
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the language model API key",
		Long: `Manage the API key sent to the language model endpoint.

The key is stored in the operating system keyring. At run time the key is
taken from --api-key, then the TRUSTGUARD_LLM_API_KEY environment variable,
then the keyring. A local model server usually needs no key at all.`,
	}

	cmd.AddCommand(newAuthSetCmd())
	cmd.AddCommand(newAuthClearCmd())
	cmd.AddCommand(newAuthStatusCmd())

	return cmd
}

func newAuthSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [api-key]",
		Short: "Store the API key in the keyring",
		Long: `Store the API key in the keyring.

The key is read from standard input when it is not given as an argument,
which keeps it out of the shell history:

  echo "$KEY" | trustguard auth set`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read api key: %w", err)
				}
				key = strings.TrimSpace(line)
			}

			if err := credential.Store(key); err != nil {
				if errors.Is(err, credential.ErrEmptyKey) {
					return errors.New("api key must not be empty")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key stored in keyring.")
			return nil
		},
	}
}

func newAuthClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the API key from the keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := credential.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keyring.")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API key would be taken from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, source, err := credential.ResolveAPIKey("")
			if err != nil {
				return err
			}
			if source == credential.SourceNone {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key configured. Requests are sent without authentication.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key configured (%s): %s\n", source, maskKey(key))
			return nil
		},
	}
}

// maskKey keeps only the last four characters of key.
func maskKey(key string) string {
	const visible = 4
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-visible) + key[len(key)-visible:]
}
