package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewQueuesCmd(_ context.Context, inspector Inspector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queues",
		Short: "List queues",
		Long:  "List the queues known to the task system",
		RunE: func(cmd *cobra.Command, _ []string) error {
			queues, err := inspector.Queues()
			if err != nil {
				cmd.PrintErrf("Could not list queues: %v", err)
				return err
			}

			cmd.Print("Task queues:\n")
			for _, q := range queues {
				cmd.Printf("- %s\n", q)
			}

			return nil
		},
	}

	return cmd
}
