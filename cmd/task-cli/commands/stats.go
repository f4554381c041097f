package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

const (
	pageSize    = 10
	historyDays = 7
)

var errUnknownTaskState = errors.New("unknown task state")

// Inspector reads queue state from the task queue.
type Inspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	History(queue string, days int) ([]*asynq.DailyStats, error)
	ListPendingTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
	ListActiveTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
	ListCompletedTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
	ListArchivedTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
}

func NewStatsCmd(ctx context.Context, inspector Inspector) *cobra.Command {
	var (
		queue     string
		queueInfo bool
		history   bool
		taskState string
		page      int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task queue statistics",
		Long: "Show task queue statistics.\n" +
			"Specify the queue name and either --queue-info, --history or a task state\n" +
			"to list with --tasks. Task listings are paginated with a page size of 10;\n" +
			"use --page to move through pages.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var stats any

			switch {
			case queueInfo:
				s, err := inspector.GetQueueInfo(queue)
				if err != nil {
					cmd.PrintErrf("Could not read queue info: %v", err)
					return err
				}

				stats = s
			case history:
				s, err := inspector.History(queue, historyDays)
				if err != nil {
					cmd.PrintErrf("Could not read queue history: %v", err)
					return err
				}

				stats = s
			default:
				s, err := listTasks(inspector, queue, taskState, page)
				if errors.Is(err, errUnknownTaskState) {
					cmd.PrintErrf("Unknown task state: %s\n", taskState)
					return nil
				}

				if err != nil {
					cmd.PrintErrf("Could not list %s tasks: %v", taskState, err)
					return err
				}

				stats = s
			}

			statsJSON, err := json.MarshalIndent(stats, "", "\t")
			if err != nil {
				cmd.PrintErrf("Could not render stats as JSON: %v", err)
				return err
			}

			cmd.Print(string(statsJSON))
			cmd.Println()

			return nil
		},
	}

	cmd.SetContext(ctx)
	cmd.Flags().StringVar(&queue, "queue", "", "Queue name")
	cmd.Flags().BoolVar(&queueInfo, "queue-info", false, "Show queue info")
	cmd.Flags().BoolVar(&history, "history", false, "Show the processed/failed history of the last week")
	cmd.Flags().StringVar(&taskState, "tasks", "", "List tasks in the given state (pending, active, completed or archived)")
	cmd.Flags().IntVar(&page, "page", 0, "Page number for paginated results")
	cmd.MarkFlagsMutuallyExclusive("queue-info", "history", "tasks")
	cmd.MarkFlagsOneRequired("queue-info", "history", "tasks")

	err := cmd.MarkFlagRequired("queue")
	if err != nil {
		cmd.PrintErrf("could not mark --queue required: %v\n", err)
	}

	return cmd
}

func listTasks(inspector Inspector, queue, state string, page int) ([]*asynq.TaskInfo, error) {
	opts := []asynq.ListOption{asynq.PageSize(pageSize), asynq.Page(page)}

	switch state {
	case "pending":
		return inspector.ListPendingTasks(queue, opts...)
	case "active":
		return inspector.ListActiveTasks(queue, opts...)
	case "completed":
		return inspector.ListCompletedTasks(queue, opts...)
	case "archived":
		return inspector.ListArchivedTasks(queue, opts...)
	default:
		return nil, errUnknownTaskState
	}
}
