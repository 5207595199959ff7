package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
	"go.uber.org/atomic"
)

const (
	defaultLockTimeout = 10 * time.Minute
	defaultJobTimeout  = 5 * time.Minute
)

// SweepRunner performs one maintenance sweep
type SweepRunner interface {
	Run(ctx context.Context) (*models.SweepResult, error)
}

// Worker runs the maintenance sweep on a cron schedule
type Worker struct {
	Worker  *models.Worker
	sweeper SweepRunner
	locks   *LockManager

	busy     atomic.Bool
	runs     atomic.Int64
	failures atomic.Int64
	flagged  atomic.Int64
	purged   atomic.Int64

	lastMu sync.RWMutex
	last   *models.SweepResult
}

func NewWorker(cfg *models.Config, log logger.Logger, sweeper SweepRunner) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if sweeper == nil {
		return nil, fmt.Errorf("sweeper cannot be nil")
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	workerConfig := &models.WorkerConfig{
		CronSchedule: cfg.SweepCron,
		LockTimeout:  defaultLockTimeout,
		JobTimeout:   defaultJobTimeout,
		Environment:  cfg.AppEnv,
		LockFilePath: cfg.LockFilePath,
	}
	if workerConfig.LockFilePath == "" {
		workerConfig.LockFilePath = filepath.Join(os.TempDir(), fmt.Sprintf("gearguard-sweep-%s.lock", cfg.AppEnv))
	}

	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}
	log.Debugf("Worker configuration: %s", utils.PrintPrettyJSON(workerConfig))

	locks := NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment)
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		Worker: &models.Worker{
			Config:       cfg,
			Logger:       log,
			CronJob:      cron.New(),
			LockManager:  &locks.LockManager,
			WorkerConfig: workerConfig,
			OwnerID:      ownerID,
			StopChan:     make(chan struct{}),
			Ctx:          ctx,
			Cancel:       cancel,
		},
		sweeper: sweeper,
		locks:   locks,
	}, nil
}

// validateWorkerConfig validates the worker configuration
func validateWorkerConfig(config *models.WorkerConfig) error {
	if config.CronSchedule == "" {
		return fmt.Errorf("cron schedule is required")
	}
	if _, err := cron.Parse(config.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.CronSchedule, err)
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	if config.JobTimeout <= 0 {
		return fmt.Errorf("job timeout must be positive")
	}
	if config.LockFilePath == "" {
		return fmt.Errorf("lock file path is required")
	}
	return nil
}

// Start schedules the sweep and starts the cron scheduler
func (w *Worker) Start() error {
	w.Worker.Mu.Lock()
	defer w.Worker.Mu.Unlock()

	if w.Worker.IsRunning {
		return fmt.Errorf("worker is already running")
	}
	select {
	case <-w.Worker.Ctx.Done():
		return fmt.Errorf("worker context is cancelled, cannot start")
	default:
	}

	if err := w.Worker.CronJob.AddFunc(w.Worker.WorkerConfig.CronSchedule, w.runScheduled); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	w.Worker.CronJob.Start()
	w.Worker.IsRunning = true

	w.Worker.Logger.Infof("Maintenance worker %s started with schedule %s", w.Worker.OwnerID, w.Worker.WorkerConfig.CronSchedule)
	return nil
}

// Stop stops the scheduler and cancels any sweep in flight. Safe to call more than once.
func (w *Worker) Stop() error {
	w.Worker.StopOnce.Do(func() {
		w.Worker.Mu.Lock()
		defer w.Worker.Mu.Unlock()

		w.Worker.CronJob.Stop()
		w.Worker.Cancel()
		w.Worker.IsRunning = false
		close(w.Worker.StopChan)
		w.Worker.Logger.Info("Maintenance worker stopped")
	})
	return nil
}

// Done is closed once the worker has stopped
func (w *Worker) Done() <-chan struct{} {
	return w.Worker.StopChan
}

func (w *Worker) IsRunning() bool {
	w.Worker.Mu.RLock()
	defer w.Worker.Mu.RUnlock()
	return w.Worker.IsRunning
}

func (w *Worker) runScheduled() {
	defer func() {
		if r := recover(); r != nil {
			w.failures.Inc()
			w.Worker.Logger.Errorf("Maintenance sweep panicked: %v", r)
		}
	}()

	if _, err := w.RunOnce(w.Worker.Ctx); err != nil {
		w.Worker.Logger.Errorf("Scheduled maintenance sweep failed: %v", err)
	}
}

// RunOnce takes the host lock and runs one sweep. When another process holds
// the lock the run is skipped and reported as such.
func (w *Worker) RunOnce(ctx context.Context) (*models.SweepResult, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return &models.SweepResult{StartedAt: time.Now(), Skipped: true, SkipReason: "sweep already running"}, nil
	}
	defer w.busy.Store(false)

	if err := w.locks.CleanupExpiredLocks(); err != nil {
		w.Worker.Logger.Warnf("Failed to clean up expired lock: %v", err)
	}

	lockInfo, err := w.locks.AcquireLock(w.Worker.OwnerID)
	if errors.Is(err, ErrLockHeld) {
		w.Worker.Logger.Infof("Skipping maintenance sweep: %v", err)
		result := &models.SweepResult{StartedAt: time.Now(), Skipped: true, SkipReason: err.Error()}
		w.setLast(result)
		return result, nil
	}
	if err != nil {
		w.failures.Inc()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() {
		if err := w.locks.ReleaseLock(lockInfo); err != nil {
			w.Worker.Logger.Errorf("Failed to release lock: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, w.Worker.WorkerConfig.JobTimeout)
	defer cancel()

	w.runs.Inc()
	result, err := w.sweeper.Run(ctx)
	if result != nil {
		w.flagged.Add(int64(len(result.EquipmentOverdue)))
		w.purged.Add(int64(result.ResetTokensPurged))
		w.setLast(result)
	}
	if err != nil {
		w.failures.Inc()
		return result, err
	}
	return result, nil
}

// Stats returns the running totals since the worker was created
func (w *Worker) Stats() models.WorkerStats {
	return models.WorkerStats{
		Runs:             w.runs.Load(),
		Failures:         w.failures.Load(),
		EquipmentFlagged: w.flagged.Load(),
		TokensPurged:     w.purged.Load(),
	}
}

// LastResult returns the most recent sweep result, or nil before the first run
func (w *Worker) LastResult() *models.SweepResult {
	w.lastMu.RLock()
	defer w.lastMu.RUnlock()
	return w.last
}

// Status bundles Stats and LastResult for the health endpoint and the sweep command
func (w *Worker) Status() *models.SweepStatus {
	return &models.SweepStatus{
		Stats: w.Stats(),
		Last:  w.LastResult(),
	}
}

func (w *Worker) setLast(result *models.SweepResult) {
	w.lastMu.Lock()
	w.last = result
	w.lastMu.Unlock()
}
