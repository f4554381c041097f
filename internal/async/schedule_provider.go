package async

import (
	"github.com/hibiken/asynq"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
)

// TaskScheduleProvider feeds the periodic task manager from the scheduler
// section of the service configuration.
type TaskScheduleProvider struct {
	Config *config.Config
}

// GetConfigs builds one periodic config per scheduled task. Task types the
// worker does not know are rejected so a config typo surfaces at scheduler
// start instead of producing dead queue entries.
func (p *TaskScheduleProvider) GetConfigs() ([]*asynq.PeriodicTaskConfig, error) {
	var schedule []*asynq.PeriodicTaskConfig

	for _, tc := range p.Config.Scheduler.Tasks {
		if _, known := config.DefinedTasks[tc.TaskType]; !known {
			return nil, errs.Wrapf(ErrInvalidTaskConfig, tc.TaskType)
		}

		schedule = append(schedule, &asynq.PeriodicTaskConfig{
			Cronspec: tc.Cronspec,
			Task:     asynq.NewTask(tc.TaskType, nil, asynq.MaxRetry(tc.Retries)),
		})
	}

	return schedule, nil
}
