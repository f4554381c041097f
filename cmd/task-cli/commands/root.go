package commands

import (
	"context"

	"github.com/spf13/cobra"

	cliutils "github.com/Bostads-AB-Mimer/onecore-keys/utils/cli"
)

func NewRootCmd(ctx context.Context) *cobra.Command {
	return cliutils.NewRootCmd(
		ctx,
		"task",
		"Key service task CLI",
		"CLI tool to inspect the task queue and invoke the key service's scheduled tasks.",
	)
}
