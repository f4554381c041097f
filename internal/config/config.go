package config

import (
	"errors"
	"time"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
)

var (
	ErrConfigurationValuesError = errors.New("configuration value error")
	ErrNonDefinedTaskType       = errors.New("task type is unknown")
	ErrRepeatedTaskType         = errors.New("task type is specified more than once")
	ErrNonPositiveWindow        = errors.New("retention window must be positive")
	ErrEmptyDatabaseHost        = errors.New("database host must be specified")
	ErrEmptyDatabaseName        = errors.New("database name must be specified")
	ErrEmptyStorageEndpoint     = errors.New("storage endpoint must be specified")
	ErrEmptyStorageBucket       = errors.New("storage bucket must be specified")
	ErrEmptyServiceURL          = errors.New("service URL must be specified")
)

// Config holds all application configuration parameters
type Config struct {
	Application Application `yaml:"application" mapstructure:"application"`
	Logger      Logger      `yaml:"logger" mapstructure:"logger"`
	Database    Database    `yaml:"database" mapstructure:"database"`
	HTTP        HTTPServer  `yaml:"http" mapstructure:"http"`
	Auth        Auth        `yaml:"auth" mapstructure:"auth"`
	Scheduler   Scheduler   `yaml:"scheduler" mapstructure:"scheduler"`
	Storage     Storage     `yaml:"storage" mapstructure:"storage"`
	Services    Services    `yaml:"services" mapstructure:"services"`
	Loans       Loans       `yaml:"loans" mapstructure:"loans"`
	Receipts    Receipts    `yaml:"receipts" mapstructure:"receipts"`
	Events      Events      `yaml:"events" mapstructure:"events"`
}

func (c *Config) Validate() error {
	err := c.Database.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.Scheduler.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.Loans.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.Receipts.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.Events.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	return nil
}

// Application holds process identity used in logs
type Application struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// Logger holds logging config
type Logger struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Database holds database config
type Database struct {
	Host   string `yaml:"host" mapstructure:"host"`
	Port   string `yaml:"port" mapstructure:"port"`
	Name   string `yaml:"name" mapstructure:"name"`
	User   string `yaml:"user" mapstructure:"user"`
	Secret string `yaml:"secret" mapstructure:"secret"`
}

func (d *Database) Validate() error {
	if d.Host == "" {
		return ErrEmptyDatabaseHost
	}

	if d.Name == "" {
		return ErrEmptyDatabaseName
	}

	return nil
}

// HTTPServer holds http server config
type HTTPServer struct {
	Address         string        `yaml:"address" mapstructure:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`
}

// Auth holds bearer token verification config
type Auth struct {
	JWTSecret string `yaml:"jwtSecret" mapstructure:"jwtSecret"`
}

// Scheduler holds a scheduler config
type Scheduler struct {
	TaskQueue Redis  `yaml:"taskQueue" mapstructure:"taskQueue"`
	Tasks     []Task `yaml:"tasks" mapstructure:"tasks"`
}

func (s *Scheduler) Validate() error {
	checkedTasks := make(map[string]struct{}, len(s.Tasks))
	for _, task := range s.Tasks {
		_, found := DefinedTasks[task.TaskType]
		if !found {
			return ErrNonDefinedTaskType
		}

		_, found = checkedTasks[task.TaskType]
		if found {
			return ErrRepeatedTaskType
		}

		checkedTasks[task.TaskType] = struct{}{}
	}

	return nil
}

// Task holds a task config
type Task struct {
	Cronspec string `yaml:"cronspec" mapstructure:"cronspec"`
	TaskType string `yaml:"taskType" mapstructure:"taskType"`
	Retries  int    `yaml:"retries" mapstructure:"retries"`
}

// Redis holds Redis client config
type Redis struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

func (r *Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// Storage holds object storage config
type Storage struct {
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"accessKey" mapstructure:"accessKey"`
	SecretKey string `yaml:"secretKey" mapstructure:"secretKey"`
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	UseSSL    bool   `yaml:"useSSL" mapstructure:"useSSL"`
}

func (s *Storage) Validate() error {
	if s.Endpoint == "" {
		return ErrEmptyStorageEndpoint
	}

	if s.Bucket == "" {
		return ErrEmptyStorageBucket
	}

	return nil
}

// Services holds the downstream REST adapters the loan workflow consults.
// An adapter with Enabled false is skipped entirely.
type Services struct {
	Contacts RESTService `yaml:"contacts" mapstructure:"contacts"`
	Leasing  RESTService `yaml:"leasing" mapstructure:"leasing"`
}

type RESTService struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	OAuth   OAuth         `yaml:"oauth" mapstructure:"oauth"`
}

func (s *RESTService) Validate() error {
	if s.Enabled && s.URL == "" {
		return ErrEmptyServiceURL
	}

	return nil
}

// OAuth holds client-credentials config for service-to-service calls
type OAuth struct {
	TokenURL     string `yaml:"tokenURL" mapstructure:"tokenURL"`
	ClientID     string `yaml:"clientID" mapstructure:"clientID"`
	ClientSecret string `yaml:"clientSecret" mapstructure:"clientSecret"`
}

// Loans holds loan maintenance config
type Loans struct {
	// ReminderAfter is the active-loan age after which a reminder is logged.
	ReminderAfter time.Duration `yaml:"reminderAfter" mapstructure:"reminderAfter"`
}

func (l *Loans) Validate() error {
	if l.ReminderAfter <= 0 {
		return ErrNonPositiveWindow
	}

	return nil
}

// Receipts holds receipt retention config
type Receipts struct {
	// PurgeUnsignedAfter is the age after which receipts without an
	// uploaded scan have their stored documents deleted.
	PurgeUnsignedAfter time.Duration `yaml:"purgeUnsignedAfter" mapstructure:"purgeUnsignedAfter"`
}

func (r *Receipts) Validate() error {
	if r.PurgeUnsignedAfter <= 0 {
		return ErrNonPositiveWindow
	}

	return nil
}

// Events holds key-event maintenance config
type Events struct {
	// ExpireRequestedAfter is the age after which REQUESTED events are
	// cancelled.
	ExpireRequestedAfter time.Duration `yaml:"expireRequestedAfter" mapstructure:"expireRequestedAfter"`
}

func (e *Events) Validate() error {
	if e.ExpireRequestedAfter <= 0 {
		return ErrNonPositiveWindow
	}

	return nil
}
