package services

import (
	"context"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils/logger"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements the logger interface for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Info(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Error(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Fatal(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Fatalf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}

func newMockLogger() *MockLogger {
	l := &MockLogger{}
	l.On("Debug", mock.Anything).Return().Maybe()
	l.On("Debugf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	l.On("Info", mock.Anything).Return().Maybe()
	l.On("Infof", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	l.On("Warn", mock.Anything).Return().Maybe()
	l.On("Warnf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	l.On("Error", mock.Anything).Return().Maybe()
	l.On("Errorf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	return l
}

// MockUserRepository implements repository.UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) ConsumeResetToken(ctx context.Context, id, token, passwordHash string) error {
	args := m.Called(ctx, id, token, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEquipmentRepository implements repository.EquipmentRepositoryInterface
type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	args := m.Called(ctx, equipment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) ListEquipmentByStatus(ctx context.Context, status models.EquipmentStatus) ([]*models.Equipment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) UpdateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	args := m.Called(ctx, equipment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) SetEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockEquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepository) CountEquipment(ctx context.Context, status models.EquipmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockRequestRepository implements repository.MaintenanceRequestRepositoryInterface
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) CreateRequest(ctx context.Context, request *models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) GetRequest(ctx context.Context, id string) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, filter models.RequestFilter) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateRequest(ctx context.Context, id string, updates map[string]interface{}) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) DeleteRequest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) CountRequests(ctx context.Context, status models.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockTeamRepository implements repository.TeamRepositoryInterface
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) ListTeams(ctx context.Context) ([]*models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Team), args.Error(1)
}

func (m *MockTeamRepository) UpdateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) DeleteTeam(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCalendarRepository implements repository.CalendarRepositoryInterface
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) CreateEvent(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarEvent), args.Error(1)
}

func (m *MockCalendarRepository) ListEvents(ctx context.Context) ([]*models.CalendarEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CalendarEvent), args.Error(1)
}

// MockTokenIssuer implements TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(user *models.User) (string, time.Duration, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

// MockResetNotifier implements ResetNotifier
type MockResetNotifier struct {
	mock.Mock
}

func (m *MockResetNotifier) SendResetToken(ctx context.Context, user *models.User, token string, expires time.Time) error {
	args := m.Called(ctx, user, token, expires)
	return args.Error(0)
}

// fixedClock pins "now" for date rules
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type stubRepoContainer struct{}

func (stubRepoContainer) GetUserRepository() repository.UserRepositoryInterface {
	return &MockUserRepository{}
}

func (stubRepoContainer) GetEquipmentRepository() repository.EquipmentRepositoryInterface {
	return &MockEquipmentRepository{}
}

func (stubRepoContainer) GetMaintenanceRequestRepository() repository.MaintenanceRequestRepositoryInterface {
	return &MockRequestRepository{}
}

func (stubRepoContainer) GetTeamRepository() repository.TeamRepositoryInterface {
	return &MockTeamRepository{}
}

func (stubRepoContainer) GetCalendarRepository() repository.CalendarRepositoryInterface {
	return &MockCalendarRepository{}
}
