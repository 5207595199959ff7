package services

import (
	"context"
	"time"

	"gearguard-backend/models"
)

// AuthServiceInterface defines the contract for authentication
type AuthServiceInterface interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// EquipmentServiceInterface defines the contract for equipment management
type EquipmentServiceInterface interface {
	ListEquipment(ctx context.Context) ([]*models.Equipment, error)
	CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, req *models.UpdateEquipmentRequest) (*models.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

// MaintenanceRequestServiceInterface defines the contract for the request workflow.
// The caller's role is passed explicitly to every write.
type MaintenanceRequestServiceInterface interface {
	ListRequests(ctx context.Context, filter models.RequestFilter) ([]*models.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, role models.Role, in *models.CreateRequestInput) (*models.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, role models.Role, id string, in *models.UpdateRequestInput) (*models.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, role models.Role, id string) error
}

// TeamServiceInterface defines the contract for team management
type TeamServiceInterface interface {
	ListTeams(ctx context.Context) ([]*models.TeamView, error)
	CreateTeam(ctx context.Context, req *models.TeamRequest) (*models.Team, error)
	UpdateTeam(ctx context.Context, id string, req *models.TeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

// DirectoryServiceInterface answers technician lookups
type DirectoryServiceInterface interface {
	ListTechnicians(ctx context.Context) ([]models.Technician, error)
	IsTechnician(ctx context.Context, email string) (bool, error)
	InvalidTechnicians(ctx context.Context, emails []string) ([]string, error)
	DisplayNames(ctx context.Context) (map[string]string, error)
}

// CalendarServiceInterface lists calendar events
type CalendarServiceInterface interface {
	ListEvents(ctx context.Context) ([]*models.CalendarEvent, error)
}

// ReportServiceInterface computes dashboard counts
type ReportServiceInterface interface {
	Summary(ctx context.Context) (*models.ReportSummary, error)
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, time.Duration, error)
}

// ResetNotifier delivers password reset tokens to users
type ResetNotifier interface {
	SendResetToken(ctx context.Context, user *models.User, token string, expires time.Time) error
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetAuthService() AuthServiceInterface
	GetEquipmentService() EquipmentServiceInterface
	GetMaintenanceRequestService() MaintenanceRequestServiceInterface
	GetTeamService() TeamServiceInterface
	GetDirectoryService() DirectoryServiceInterface
	GetCalendarService() CalendarServiceInterface
	GetReportService() ReportServiceInterface
}
