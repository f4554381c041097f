package commands

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

type MockEnqueuer struct {
	CallCount int
	LastTask  *asynq.Task
	Error     error
}

func (m *MockEnqueuer) EnqueueTask(
	_ context.Context,
	task *asynq.Task,
	_ ...asynq.Option,
) (*asynq.TaskInfo, error) {
	m.CallCount++

	m.LastTask = task
	if m.Error != nil {
		return nil, m.Error
	}

	return &asynq.TaskInfo{ID: "mock-task-id", Queue: "default"}, nil
}

// MockInspector serves a fixed snapshot of the queue so the command tests
// can assert on rendered output without Redis.
type MockInspector struct{}

func (m *MockInspector) Queues() ([]string, error) {
	return []string{"default", "maintenance"}, nil
}

func (m *MockInspector) GetQueueInfo(queue string) (*asynq.QueueInfo, error) {
	return &asynq.QueueInfo{Queue: queue, Size: 17}, nil
}

func (m *MockInspector) History(_ string, _ int) ([]*asynq.DailyStats, error) {
	return []*asynq.DailyStats{
		{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Processed: 12, Failed: 3},
		{Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), Processed: 9, Failed: 0},
	}, nil
}

func (m *MockInspector) ListPendingTasks(_ string, _ ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return []*asynq.TaskInfo{
		{ID: "remind-0041", Type: config.TypeLoanReminderTask},
		{ID: "purge-0042", Type: config.TypeReceiptPurgeTask},
	}, nil
}

func (m *MockInspector) ListActiveTasks(_ string, _ ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return []*asynq.TaskInfo{
		{ID: "expire-0043", Type: config.TypeKeyEventExpiryTask},
	}, nil
}

func (m *MockInspector) ListCompletedTasks(_ string, _ ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return []*asynq.TaskInfo{
		{ID: "remind-0039", Type: config.TypeLoanReminderTask},
		{ID: "expire-0040", Type: config.TypeKeyEventExpiryTask},
	}, nil
}

func (m *MockInspector) ListArchivedTasks(_ string, _ ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return []*asynq.TaskInfo{
		{ID: "purge-0007", Type: config.TypeReceiptPurgeTask},
	}, nil
}
