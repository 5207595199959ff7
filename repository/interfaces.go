package repository

import (
	"context"
	"time"

	"gearguard-backend/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, id, token, passwordHash string) error
	ClearResetToken(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int64, error)
}

// EquipmentRepositoryInterface defines the contract for equipment repository operations
type EquipmentRepositoryInterface interface {
	CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	ListEquipment(ctx context.Context) ([]*models.Equipment, error)
	ListEquipmentByStatus(ctx context.Context, status models.EquipmentStatus) ([]*models.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error)
	SetEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) error
	DeleteEquipment(ctx context.Context, id string) error
	CountEquipment(ctx context.Context, status models.EquipmentStatus) (int64, error)
}

// MaintenanceRequestRepositoryInterface defines the contract for maintenance request operations
type MaintenanceRequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, request *models.MaintenanceRequest) (*models.MaintenanceRequest, error)
	GetRequest(ctx context.Context, id string) (*models.MaintenanceRequest, error)
	ListRequests(ctx context.Context, filter models.RequestFilter) ([]*models.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id string, updates map[string]interface{}) (*models.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	CountRequests(ctx context.Context, status models.RequestStatus) (int64, error)
}

// TeamRepositoryInterface defines the contract for team repository operations
type TeamRepositoryInterface interface {
	CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, team *models.Team) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

// CalendarRepositoryInterface defines the contract for calendar event operations
type CalendarRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context) ([]*models.CalendarEvent, error)
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetUserRepository() UserRepositoryInterface
	GetEquipmentRepository() EquipmentRepositoryInterface
	GetMaintenanceRequestRepository() MaintenanceRequestRepositoryInterface
	GetTeamRepository() TeamRepositoryInterface
	GetCalendarRepository() CalendarRepositoryInterface
}
