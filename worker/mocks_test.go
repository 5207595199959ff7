package worker

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

// MockDatabaseClient implements dal.DatabaseClientInterface; setup only needs EnsureTable
type MockDatabaseClient struct {
	mock.Mock
}

func (m *MockDatabaseClient) GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error {
	return m.Called(ctx, config, result).Error(0)
}

func (m *MockDatabaseClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	return m.Called(ctx, tableName, item).Error(0)
}

func (m *MockDatabaseClient) CreateItem(ctx context.Context, tableName, key string, item interface{}) error {
	return m.Called(ctx, tableName, key, item).Error(0)
}

func (m *MockDatabaseClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	return m.Called(ctx, tableName, key, keyValue, updates).Error(0)
}

func (m *MockDatabaseClient) UpdateItemIf(ctx context.Context, tableName, key, keyValue string, updates, expected map[string]interface{}) error {
	return m.Called(ctx, tableName, key, keyValue, updates, expected).Error(0)
}

func (m *MockDatabaseClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	return m.Called(ctx, tableName, key, value).Error(0)
}

func (m *MockDatabaseClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	return m.Called(ctx, tableName, indexName, keyName, keyValue, results).Error(0)
}

func (m *MockDatabaseClient) ScanTable(ctx context.Context, tableName string, results interface{}) error {
	return m.Called(ctx, tableName, results).Error(0)
}

func (m *MockDatabaseClient) CountItems(ctx context.Context, tableName string, filter map[string]string) (int64, error) {
	args := m.Called(ctx, tableName, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDatabaseClient) EnsureTable(ctx context.Context, def models.TableDefinition) (bool, error) {
	args := m.Called(ctx, def)
	return args.Bool(0), args.Error(1)
}

func (m *MockDatabaseClient) Driver() string {
	return "mock"
}

func (m *MockDatabaseClient) Close(ctx context.Context) error {
	return nil
}

// mockRepos hands out the mocks above; the request repository is unused by the worker
type mockRepos struct {
	users     *MockUserRepository
	equipment *MockEquipmentRepository
	teams     *MockTeamRepository
	calendar  *MockCalendarRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:     &MockUserRepository{},
		equipment: &MockEquipmentRepository{},
		teams:     &MockTeamRepository{},
		calendar:  &MockCalendarRepository{},
	}
}

func (r *mockRepos) GetUserRepository() repository.UserRepositoryInterface {
	return r.users
}

func (r *mockRepos) GetEquipmentRepository() repository.EquipmentRepositoryInterface {
	return r.equipment
}

func (r *mockRepos) GetMaintenanceRequestRepository() repository.MaintenanceRequestRepositoryInterface {
	return nil
}

func (r *mockRepos) GetTeamRepository() repository.TeamRepositoryInterface {
	return r.teams
}

func (r *mockRepos) GetCalendarRepository() repository.CalendarRepositoryInterface {
	return r.calendar
}

func (r *mockRepos) assertExpectations(t mock.TestingT) {
	r.users.AssertExpectations(t)
	r.equipment.AssertExpectations(t)
	r.teams.AssertExpectations(t)
	r.calendar.AssertExpectations(t)
}

// stubSweeper returns canned results and counts calls
type stubSweeper struct {
	result  *models.SweepResult
	err     error
	entered chan struct{}
	block   chan struct{}
	calls   int
}

func (s *stubSweeper) Run(ctx context.Context) (*models.SweepResult, error) {
	s.calls++
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
