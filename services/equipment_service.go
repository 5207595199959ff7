package services

import (
	"context"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

type EquipmentService struct {
	equipmentRepo repository.EquipmentRepositoryInterface
	logger        logger.Logger
	now           func() time.Time
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepositoryInterface, log logger.Logger) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		logger:        log,
		now:           time.Now,
	}
}

func (s *EquipmentService) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	return s.equipmentRepo.ListEquipment(ctx)
}

// CreateEquipment registers new equipment as Operational, last maintained today
func (s *EquipmentService) CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest) (*models.Equipment, error) {
	if req.MaintenanceSchedule < 0 {
		return nil, models.NewFieldError("maintenanceSchedule", "maintenanceSchedule cannot be negative")
	}

	return s.equipmentRepo.CreateEquipment(ctx, &models.Equipment{
		Name:                req.Name,
		Type:                req.Type,
		Location:            req.Location,
		Status:              models.EquipmentOperational,
		LastMaintenance:     utils.FormatDate(s.now()),
		MaintenanceSchedule: req.MaintenanceSchedule,
	})
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, req *models.UpdateEquipmentRequest) (*models.Equipment, error) {
	if !req.Status.Valid() {
		return nil, models.NewFieldError("status", "status must be one of Operational, Maintenance, Overdue, Unoperational")
	}
	if req.MaintenanceSchedule < 0 {
		return nil, models.NewFieldError("maintenanceSchedule", "maintenanceSchedule cannot be negative")
	}
	if req.LastMaintenance != "" {
		if _, err := utils.ParseDate(req.LastMaintenance); err != nil {
			return nil, models.NewFieldError("lastMaintenance", "lastMaintenance must be a valid date")
		}
	}

	return s.equipmentRepo.UpdateEquipment(ctx, &models.Equipment{
		ID:                  id,
		Name:                req.Name,
		Type:                req.Type,
		Location:            req.Location,
		Status:              req.Status,
		LastMaintenance:     req.LastMaintenance,
		MaintenanceSchedule: req.MaintenanceSchedule,
	})
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}
