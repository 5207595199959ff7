package controller

import (
	"context"

	"gearguard-backend/models"
	"gearguard-backend/services"
	"gearguard-backend/utils/logger"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements the logger interface for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Debugf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Info(args ...interface{})                  { m.Called(args...) }
func (m *MockLogger) Infof(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockLogger) Warn(args ...interface{})                  { m.Called(args...) }
func (m *MockLogger) Warnf(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockLogger) Error(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Errorf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Fatal(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Fatalf(format string, args ...interface{}) { m.Called(format, args) }

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	m.Called(fields)
	return m
}

func newMockLogger() *MockLogger {
	m := &MockLogger{}
	for _, method := range []string{"Debugf", "Infof", "Warnf", "Errorf"} {
		m.On(method, mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	}
	m.On("WithFields", mock.Anything).Return().Maybe()
	return m
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest) (*models.Equipment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) UpdateEquipment(ctx context.Context, id string, req *models.UpdateEquipmentRequest) (*models.Equipment, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) ListRequests(ctx context.Context, filter models.RequestFilter) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestService) CreateRequest(ctx context.Context, role models.Role, in *models.CreateRequestInput) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, role, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestService) UpdateRequest(ctx context.Context, role models.Role, id string, in *models.UpdateRequestInput) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, role, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestService) DeleteRequest(ctx context.Context, role models.Role, id string) error {
	return m.Called(ctx, role, id).Error(0)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) ListTeams(ctx context.Context) ([]*models.TeamView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TeamView), args.Error(1)
}

func (m *MockTeamService) CreateTeam(ctx context.Context, req *models.TeamRequest) (*models.Team, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) UpdateTeam(ctx context.Context, id string, req *models.TeamRequest) (*models.Team, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) DeleteTeam(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListTechnicians(ctx context.Context) ([]models.Technician, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Technician), args.Error(1)
}

func (m *MockDirectoryService) IsTechnician(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectoryService) InvalidTechnicians(ctx context.Context, emails []string) ([]string, error) {
	args := m.Called(ctx, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectoryService) DisplayNames(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) ListEvents(ctx context.Context) ([]*models.CalendarEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CalendarEvent), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summary(ctx context.Context) (*models.ReportSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportSummary), args.Error(1)
}

// mockServices bundles one mock per service behind the container interface
type mockServices struct {
	auth      *MockAuthService
	equipment *MockEquipmentService
	requests  *MockRequestService
	teams     *MockTeamService
	directory *MockDirectoryService
	calendar  *MockCalendarService
	reports   *MockReportService
}

func newMockServices() *mockServices {
	return &mockServices{
		auth:      &MockAuthService{},
		equipment: &MockEquipmentService{},
		requests:  &MockRequestService{},
		teams:     &MockTeamService{},
		directory: &MockDirectoryService{},
		calendar:  &MockCalendarService{},
		reports:   &MockReportService{},
	}
}

func (m *mockServices) GetAuthService() services.AuthServiceInterface { return m.auth }
func (m *mockServices) GetEquipmentService() services.EquipmentServiceInterface {
	return m.equipment
}
func (m *mockServices) GetMaintenanceRequestService() services.MaintenanceRequestServiceInterface {
	return m.requests
}
func (m *mockServices) GetTeamService() services.TeamServiceInterface { return m.teams }
func (m *mockServices) GetDirectoryService() services.DirectoryServiceInterface {
	return m.directory
}
func (m *mockServices) GetCalendarService() services.CalendarServiceInterface { return m.calendar }
func (m *mockServices) GetReportService() services.ReportServiceInterface     { return m.reports }
