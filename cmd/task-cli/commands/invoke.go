package commands

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

// Enqueuer enqueues a task onto the task queue.
type Enqueuer interface {
	EnqueueTask(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewInvokeCmd(ctx context.Context, enqueuer Enqueuer) *cobra.Command {
	var taskName string

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run a scheduled task on demand",
		Long: "Run one of the service's scheduled tasks right away.\n" +
			"For example: task invoke --task " + config.TypeLoanReminderTask,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := config.DefinedTasks[taskName]; !ok {
				cmd.PrintErrf("No such task: %s\n", taskName)
				return nil
			}

			task := asynq.NewTask(taskName, nil)

			info, err := enqueuer.EnqueueTask(cmd.Context(), task)
			if err != nil {
				cmd.PrintErrf("Could not enqueue %s: %v", taskName, err)
				return err
			}

			cmd.Printf("Enqueued %s as %s on queue %s\n", taskName, info.ID, info.Queue)

			return nil
		},
	}

	cmd.SetContext(ctx)
	cmd.Flags().StringVar(&taskName, "task", "", "Name of the task to run")

	if err := cmd.MarkFlagRequired("task"); err != nil {
		cmd.PrintErrf("could not mark --task required: %v\n", err)
	}

	return cmd
}
