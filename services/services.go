package services

import (
	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	authService      AuthServiceInterface
	equipmentService EquipmentServiceInterface
	requestService   MaintenanceRequestServiceInterface
	teamService      TeamServiceInterface
	directoryService DirectoryServiceInterface
	calendarService  CalendarServiceInterface
	reportService    ReportServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	tokens TokenIssuer,
	notifier ResetNotifier,
	logger logger.Logger,
	config *models.Config,
) ServiceContainerInterface {
	directory := NewDirectoryService(repoContainer.GetUserRepository(), logger)

	return &Service{
		authService:      NewAuthService(repoContainer.GetUserRepository(), tokens, notifier, logger, config),
		equipmentService: NewEquipmentService(repoContainer.GetEquipmentRepository(), logger),
		requestService: NewMaintenanceRequestService(
			repoContainer.GetMaintenanceRequestRepository(),
			repoContainer.GetEquipmentRepository(),
			repoContainer.GetTeamRepository(),
			directory,
			logger,
			config,
		),
		teamService:      NewTeamService(repoContainer.GetTeamRepository(), directory, logger),
		directoryService: directory,
		calendarService:  NewCalendarService(repoContainer.GetCalendarRepository(), logger),
		reportService:    NewReportService(repoContainer.GetEquipmentRepository(), repoContainer.GetMaintenanceRequestRepository(), logger),
	}
}

func (s *Service) GetAuthService() AuthServiceInterface {
	return s.authService
}

func (s *Service) GetEquipmentService() EquipmentServiceInterface {
	return s.equipmentService
}

func (s *Service) GetMaintenanceRequestService() MaintenanceRequestServiceInterface {
	return s.requestService
}

func (s *Service) GetTeamService() TeamServiceInterface {
	return s.teamService
}

func (s *Service) GetDirectoryService() DirectoryServiceInterface {
	return s.directoryService
}

func (s *Service) GetCalendarService() CalendarServiceInterface {
	return s.calendarService
}

func (s *Service) GetReportService() ReportServiceInterface {
	return s.reportService
}
