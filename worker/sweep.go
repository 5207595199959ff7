package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

// Sweeper flags equipment whose maintenance interval has lapsed and
// purges expired password reset tokens
type Sweeper struct {
	equipmentRepo repository.EquipmentRepositoryInterface
	userRepo      repository.UserRepositoryInterface
	logger        logger.Logger
	now           func() time.Time
}

func NewSweeper(repos repository.RepositoryContainerInterface, log logger.Logger) *Sweeper {
	return &Sweeper{
		equipmentRepo: repos.GetEquipmentRepository(),
		userRepo:      repos.GetUserRepository(),
		logger:        log,
		now:           time.Now,
	}
}

// Run executes one sweep. Item failures are logged and joined into the
// returned error; the rest of the sweep still runs.
func (s *Sweeper) Run(ctx context.Context) (*models.SweepResult, error) {
	started := s.now()
	result := &models.SweepResult{
		StartedAt:        started,
		EquipmentOverdue: []string{},
	}

	var errs []error
	if err := s.flagOverdueEquipment(ctx, result); err != nil {
		errs = append(errs, err)
	}
	if err := s.purgeResetTokens(ctx, result); err != nil {
		errs = append(errs, err)
	}

	result.Duration = s.now().Sub(started)
	s.logger.WithFields(map[string]interface{}{
		"equipment_checked": result.EquipmentChecked,
		"equipment_overdue": len(result.EquipmentOverdue),
		"tokens_purged":     result.ResetTokensPurged,
	}).Infof("Maintenance sweep finished in %s", result.Duration)

	return result, errors.Join(errs...)
}

func (s *Sweeper) flagOverdueEquipment(ctx context.Context, result *models.SweepResult) error {
	items, err := s.equipmentRepo.ListEquipmentByStatus(ctx, models.EquipmentOperational)
	if err != nil {
		return fmt.Errorf("list operational equipment: %w", err)
	}

	today := utils.StartOfDay(s.now())
	var errs []error
	for _, item := range items {
		result.EquipmentChecked++
		if !maintenanceLapsed(item, today) {
			continue
		}
		if err := s.equipmentRepo.SetEquipmentStatus(ctx, item.ID, models.EquipmentOverdue); err != nil {
			s.logger.Errorf("Failed to flag equipment %s as overdue: %v", item.ID, err)
			errs = append(errs, err)
			continue
		}
		s.logger.Infof("Equipment %s (%s) is overdue for maintenance", item.ID, item.Name)
		result.EquipmentOverdue = append(result.EquipmentOverdue, item.ID)
	}
	return errors.Join(errs...)
}

// maintenanceLapsed reports whether lastMaintenance + schedule days is before today.
// A zero schedule means no recurring maintenance.
func maintenanceLapsed(item *models.Equipment, today time.Time) bool {
	if item.MaintenanceSchedule <= 0 || item.LastMaintenance == "" {
		return false
	}
	last, err := utils.ParseDate(item.LastMaintenance)
	if err != nil {
		return false
	}
	due := utils.StartOfDay(last).AddDate(0, 0, item.MaintenanceSchedule)
	return due.Before(today)
}

func (s *Sweeper) purgeResetTokens(ctx context.Context, result *models.SweepResult) error {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	now := s.now()
	var errs []error
	for _, user := range users {
		if user.ResetToken == "" || user.ResetExpires == nil || user.ResetExpires.After(now) {
			continue
		}
		if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
			s.logger.Errorf("Failed to clear reset token for user %s: %v", user.ID, err)
			errs = append(errs, err)
			continue
		}
		result.ResetTokensPurged++
	}
	return errors.Join(errs...)
}
