package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command shared by the service CLIs. With the
// --sleep flag the command blocks until SIGINT or SIGTERM, so the CLI can run
// as a container entrypoint and still be invoked through exec.
func NewRootCmd(
	ctx context.Context,
	use string,
	shortDesc string,
	longDesc string,
) *cobra.Command {
	var sleep bool

	rootCmd := &cobra.Command{
		Use:   use,
		Short: shortDesc,
		Long:  longDesc,

		Run: func(cmd *cobra.Command, _ []string) {
			if sleep {
				waitForShutdown(cmd)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&sleep, "sleep", false, "Block until a termination signal is received")
	rootCmd.SetContext(ctx)

	return rootCmd
}

func waitForShutdown(cmd *cobra.Command) {
	cmd.Println("Waiting for a termination signal...")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	<-sigs
	cmd.Println("Signal received, shutting down...")
}
