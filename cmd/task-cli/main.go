package main

import (
	"context"
	"os"

	"github.com/samber/oops"

	"github.com/Bostads-AB-Mimer/onecore-keys/cmd/task-cli/commands"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/async"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/cmd"
)

func run(ctx context.Context, cfg *config.Config) error {
	log.InitAsDefault(cfg.Logger, cfg.Application)

	asyncApp := async.New(cfg)
	asyncInspector := asyncApp.Inspector()

	rootCmd := commands.NewRootCmd(ctx)
	rootCmd.AddCommand(commands.NewStatsCmd(ctx, asyncInspector))
	rootCmd.AddCommand(commands.NewQueuesCmd(ctx, asyncInspector))
	rootCmd.AddCommand(commands.NewInvokeCmd(ctx, asyncApp))

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "running command")
	}

	return nil
}

// main defers to run so the command wiring stays testable.
func main() {
	os.Exit(cmd.RunFuncWithSignalHandling(run, cmd.RunFlags{Env: "TASK_CLI"}))
}
