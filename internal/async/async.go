package async

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/async/tasks"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/db"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

// syncInterval is how often the periodic task manager re-reads the
// scheduler configuration.
const syncInterval = 10 * time.Second

// TaskHandler is one maintenance task. It doubles as an asynq.Handler,
// so registered handlers mount on the worker mux directly.
type TaskHandler interface {
	ProcessTask(ctx context.Context, task *asynq.Task) error
	TaskType() string
}

// App ties the task queue client, the worker and the scheduler together.
// Worker, scheduler and CLI processes all start from the same App; only
// RunWorker opens the database.
type App struct {
	asynqClient  *asynq.Client
	asynqServer  *asynq.Server
	taskQueueCfg asynq.RedisClientOpt
	tasks        map[string]TaskHandler
	cfg          *config.Config
}

func New(cfg *config.Config) *App {
	taskQueueCfg := cfg.Scheduler.TaskQueue

	redisOpts := asynq.RedisClientOpt{
		Addr:     taskQueueCfg.Addr(),
		Username: taskQueueCfg.Username,
		Password: taskQueueCfg.Password,
	}

	return &App{
		taskQueueCfg: redisOpts,
		asynqClient:  asynq.NewClient(redisOpts),
		tasks:        make(map[string]TaskHandler),
		cfg:          cfg,
	}
}

// RegisterTasks makes the handlers available to the worker, keyed by
// task type.
func (a *App) RegisterTasks(ctx context.Context, handlers []TaskHandler) {
	for _, handler := range handlers {
		taskType := handler.TaskType()
		a.tasks[taskType] = handler
		log.Info(ctx, "Task handler registered", slog.String("type", taskType))
	}
}

// RunWorker connects the worker to its dependencies, registers the
// maintenance tasks and serves the queue until the server stops.
func (a *App) RunWorker(ctx context.Context) error {
	log.Info(ctx, "Bringing up the task worker")

	dbCon, err := db.StartDBConnection(ctx, a.cfg.Database)
	if err != nil {
		return errs.Wrap(db.ErrStartingDBCon, err)
	}

	clientsFactory, err := clients.NewFactory(a.cfg.Services)
	if err != nil {
		log.Error(ctx, "error connecting to downstream services", err)
	}

	store, err := storage.NewMinioStore(a.cfg.Storage)
	if err != nil {
		return errs.Wrapf(err, "failed to create object store")
	}

	managers := manager.New(sql.NewRepository(dbCon), store, clientsFactory)

	a.RegisterTasks(ctx,
		[]TaskHandler{
			tasks.NewLoanReminder(managers.Loans, a.cfg.Loans),
			tasks.NewReceiptPurger(managers.Receipts, a.cfg.Receipts),
			tasks.NewEventExpirer(managers.Events, a.cfg.Events),
		})

	mux := asynq.NewServeMux()
	for taskType, handler := range a.tasks {
		mux.Handle(taskType, handler)
	}

	a.asynqServer = asynq.NewServer(a.taskQueueCfg, asynq.Config{})

	log.Info(ctx, "Task worker accepting tasks")

	err = a.asynqServer.Run(mux)
	if err != nil {
		return errs.Wrap(ErrWorkerStart, err)
	}

	return nil
}

// RunScheduler enqueues the cron tasks from the scheduler configuration
// until stopped. Configuration changes are picked up while running.
func (a *App) RunScheduler() error {
	provider := &TaskScheduleProvider{a.cfg}

	mgr, err := asynq.NewPeriodicTaskManager(
		asynq.PeriodicTaskManagerOpts{
			RedisConnOpt:               a.taskQueueCfg,
			PeriodicTaskConfigProvider: provider,
			SyncInterval:               syncInterval,
		})
	if err != nil {
		return errs.Wrap(ErrSchedulerInit, err)
	}

	err = mgr.Run()
	if err != nil {
		return errs.Wrap(ErrSchedulerRun, err)
	}

	return nil
}

// Inspector returns a queue inspector bound to the task queue.
func (a *App) Inspector() *asynq.Inspector {
	return asynq.NewInspector(a.taskQueueCfg)
}

// EnqueueTask puts a task on the queue for the worker to pick up.
func (a *App) EnqueueTask(
	ctx context.Context,
	task *asynq.Task,
	opts ...asynq.Option,
) (*asynq.TaskInfo, error) {
	ctx = log.WithTask(ctx, task)

	info, err := a.asynqClient.Enqueue(task, opts...)
	if err != nil {
		return nil, errs.Wrap(ErrEnqueueTask, err)
	}

	log.Debug(ctx, "Task enqueued", slog.String("queue", info.Queue))

	return info, nil
}

// Shutdown stops the worker server if one is running and closes the
// queue client.
func (a *App) Shutdown(ctx context.Context) error {
	log.Info(ctx, "Shutting down the task app")

	if a.asynqServer != nil {
		a.asynqServer.Shutdown()
	}

	if a.asynqClient != nil {
		err := a.asynqClient.Close()
		if err != nil {
			return errs.Wrap(ErrClientClose, err)
		}
	}

	log.Info(ctx, "Task app shutdown complete")

	return nil
}
