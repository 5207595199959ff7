package services

import (
	"context"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils/logger"
)

type ReportService struct {
	equipmentRepo repository.EquipmentRepositoryInterface
	requestRepo   repository.MaintenanceRequestRepositoryInterface
	logger        logger.Logger
}

func NewReportService(equipmentRepo repository.EquipmentRepositoryInterface, requestRepo repository.MaintenanceRequestRepositoryInterface, log logger.Logger) *ReportService {
	return &ReportService{
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		logger:        log,
	}
}

// Summary counts equipment and requests at call time
func (s *ReportService) Summary(ctx context.Context) (*models.ReportSummary, error) {
	var (
		summary models.ReportSummary
		err     error
	)

	if summary.TotalEquipment, err = s.equipmentRepo.CountEquipment(ctx, ""); err != nil {
		return nil, err
	}
	if summary.MaintenanceRequests, err = s.requestRepo.CountRequests(ctx, ""); err != nil {
		return nil, err
	}
	if summary.CompletedRequests, err = s.requestRepo.CountRequests(ctx, models.StatusRepaired); err != nil {
		return nil, err
	}
	if summary.OverdueEquipment, err = s.equipmentRepo.CountEquipment(ctx, models.EquipmentOverdue); err != nil {
		return nil, err
	}

	return &summary, nil
}
