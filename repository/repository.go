package repository

import (
	"gearguard-backend/dal"
	"gearguard-backend/models"
	"gearguard-backend/utils/logger"
)

// RepositoryContainer holds every repository built over one store client
type RepositoryContainer struct {
	userRepo      UserRepositoryInterface
	equipmentRepo EquipmentRepositoryInterface
	requestRepo   MaintenanceRequestRepositoryInterface
	teamRepo      TeamRepositoryInterface
	calendarRepo  CalendarRepositoryInterface
}

func NewRepositoryContainer(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *RepositoryContainer {
	return &RepositoryContainer{
		userRepo:      NewUserRepository(db, cfg, log),
		equipmentRepo: NewEquipmentRepository(db, cfg, log),
		requestRepo:   NewMaintenanceRequestRepository(db, cfg, log),
		teamRepo:      NewTeamRepository(db, cfg, log),
		calendarRepo:  NewCalendarRepository(db, cfg, log),
	}
}

func (r *RepositoryContainer) GetUserRepository() UserRepositoryInterface {
	return r.userRepo
}

func (r *RepositoryContainer) GetEquipmentRepository() EquipmentRepositoryInterface {
	return r.equipmentRepo
}

func (r *RepositoryContainer) GetMaintenanceRequestRepository() MaintenanceRequestRepositoryInterface {
	return r.requestRepo
}

func (r *RepositoryContainer) GetTeamRepository() TeamRepositoryInterface {
	return r.teamRepo
}

func (r *RepositoryContainer) GetCalendarRepository() CalendarRepositoryInterface {
	return r.calendarRepo
}
