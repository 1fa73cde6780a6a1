package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/di"
	"github.com/gavinalvarezz/PhishBotAgent/internal/ports"
	"github.com/spf13/cobra"
)

func newScanCmd(g *globalFlags) *cobra.Command {
	var (
		jsonOutput bool
		text       string
	)

	cmd := &cobra.Command{
		Use:   "scan [email-file]",
		Short: "Scan an email for phishing risk",
		Long: `Scan an email and print its risk score, advice and the evidence found.

The email is read from the given file, from --text, or from stdin.
MIME messages (.eml) are decoded first; pasted text is scanned as is.

Examples:
  phishbot scan message.eml
  phishbot scan --json < message.eml
  phishbot scan --text "From: billing@netfiix.com URGENT: verify your account"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args, text)
			if err != nil {
				return err
			}

			container, err := di.BuildCLIContainer(g.cliFlags(cmd, jsonOutput))
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}

			return container.Invoke(func(emailFilter ports.EmailFilter) error {
				_, err := emailFilter.ProcessEmail(context.Background(), raw)
				switch {
				case errors.Is(err, core.ErrEmptyInput):
					fmt.Fprintln(cmd.OutOrStdout(), "Please paste an email to scan.")
					return fmt.Errorf("nothing to scan: %w", err)
				case errors.Is(err, core.ErrScanningHalted):
					return fmt.Errorf("%w. Check the danger word list and its pinned SHA-256", err)
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().StringVar(&text, "text", "", "Scan this text instead of a file or stdin")

	return cmd
}

func readInput(cmd *cobra.Command, args []string, text string) (string, error) {
	if text != "" {
		return text, nil
	}
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read email file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
