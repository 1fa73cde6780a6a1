package main

import (
	"fmt"
	"strconv"

	"github.com/gavinalvarezz/PhishBotAgent/internal/advisory"
	"github.com/spf13/cobra"
)

func newAdviseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advise <score>",
		Short: "Show the recommendation for a risk score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("score must be an integer: %q", args[0])
			}

			advice := advisory.NewEngine().Advise(score)
			fmt.Fprintf(cmd.OutOrStdout(), "Tier: %s\n\n%s\n", advice.Label, advice.Message())
			return nil
		},
	}
}
