package models

import (
	"context"
	"sync"
	"time"

	"gearguard-backend/utils/logger"

	"github.com/robfig/cron"
)

// LockManager handles host-level locking for background jobs
type LockManager struct {
	LockFilePath string
	LockTimeout  time.Duration
	Environment  string
}

// LockInfo represents lock file contents
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// WorkerConfig holds configuration for the maintenance worker
type WorkerConfig struct {
	CronSchedule string        `json:"cron_schedule"`
	LockTimeout  time.Duration `json:"lock_timeout"`
	JobTimeout   time.Duration `json:"job_timeout"`
	Environment  string        `json:"environment"`
	LockFilePath string        `json:"lock_file_path"`
}

// Worker manages the maintenance cron job
type Worker struct {
	Config       *Config
	Logger       logger.Logger
	CronJob      *cron.Cron
	LockManager  *LockManager
	WorkerConfig *WorkerConfig
	OwnerID      string
	IsRunning    bool
	StopChan     chan struct{}

	Mu       sync.RWMutex
	Ctx      context.Context
	Cancel   context.CancelFunc
	StopOnce sync.Once
}

// SweepResult summarizes one maintenance sweep
type SweepResult struct {
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration"`
	EquipmentChecked  int           `json:"equipment_checked"`
	EquipmentOverdue  []string      `json:"equipment_overdue"`
	ResetTokensPurged int           `json:"reset_tokens_purged"`
	Skipped           bool          `json:"skipped"`
	SkipReason        string        `json:"skip_reason,omitempty"`
}

// WorkerStats are the running totals of the worker
type WorkerStats struct {
	Runs             int64 `json:"runs"`
	Failures         int64 `json:"failures"`
	EquipmentFlagged int64 `json:"equipment_flagged"`
	TokensPurged     int64 `json:"tokens_purged"`
}

// SweepStatus reports the worker totals and its latest run
type SweepStatus struct {
	Stats WorkerStats  `json:"stats"`
	Last  *SweepResult `json:"last,omitempty"`
}

// SeedData is the layout of the seed YAML file
type SeedData struct {
	Users     []SeedUser      `yaml:"users"`
	Equipment []SeedEquipment `yaml:"equipment"`
	Teams     []SeedTeam      `yaml:"teams"`
	Events    []CalendarEvent `yaml:"calendar_events"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

type SeedEquipment struct {
	Name                string `yaml:"name"`
	Type                string `yaml:"type"`
	Location            string `yaml:"location"`
	Status              string `yaml:"status"`
	LastMaintenance     string `yaml:"lastMaintenance"`
	MaintenanceSchedule int    `yaml:"maintenanceSchedule"`
}

type SeedTeam struct {
	Name              string   `yaml:"name"`
	Lead              string   `yaml:"lead"`
	Members           []string `yaml:"members"`
	AssignedEquipment []string `yaml:"assignedEquipment"`
}

// SetupResult summarizes a setup run
type SetupResult struct {
	TablesEnsured []string `json:"tables_ensured"`
	UsersSeeded   int      `json:"users_seeded"`
	ItemsSeeded   int      `json:"items_seeded"`
}
