package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gearguard-backend/dal"
	"gearguard-backend/models"
	"gearguard-backend/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *MockDatabaseClient
	config    *models.Config
	users     *UserRepository
	equipment *EquipmentRepository
	requests  *MaintenanceRequestRepository
	teams     *TeamRepository
	calendar  *CalendarRepository
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = &MockDatabaseClient{}
	suite.config = &models.Config{DynamoDBTablePrefix: "test"}
	log := logger.NewNopLogger()

	suite.users = NewUserRepository(suite.db, suite.config, log)
	suite.equipment = NewEquipmentRepository(suite.db, suite.config, log)
	suite.requests = NewMaintenanceRequestRepository(suite.db, suite.config, log)
	suite.teams = NewTeamRepository(suite.db, suite.config, log)
	suite.calendar = NewCalendarRepository(suite.db, suite.config, log)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	suite.db.AssertExpectations(suite.T())
}

func (suite *RepositoryTestSuite) expectUserByEmail(email string, user *models.User) {
	suite.db.On("GetItem", suite.ctx, models.QueryConfig{
		TableName: "test_users",
		IndexName: "email-index",
		KeyName:   "email",
		KeyValue:  email,
		KeyType:   models.StringType,
	}, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		if user != nil {
			*args.Get(2).(*models.User) = *user
		}
	}).Return(nil).Once()
}

func (suite *RepositoryTestSuite) expectEmailClaim(email string, err error) {
	suite.db.On("CreateItem", suite.ctx, "test_user_emails", "email", mock.MatchedBy(func(c *models.EmailClaim) bool {
		return c.Email == email && strings.HasPrefix(c.UserID, "user_")
	})).Return(err).Once()
}

func (suite *RepositoryTestSuite) TestCreateUser() {
	suite.expectUserByEmail("new@gearguard.com", nil)
	suite.expectEmailClaim("new@gearguard.com", nil)
	suite.db.On("CreateItem", suite.ctx, "test_users", "id", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.users.CreateUser(suite.ctx, &models.User{Email: "new@gearguard.com", Name: "New", Role: models.RoleTechnician})

	require.NoError(suite.T(), err)
	assert.Regexp(suite.T(), "^user_", user.ID)
	assert.False(suite.T(), user.CreatedAt.IsZero())
}

func (suite *RepositoryTestSuite) TestCreateUserDuplicateEmail() {
	suite.expectUserByEmail("tech@gearguard.com", &models.User{ID: "user_1", Email: "tech@gearguard.com"})

	_, err := suite.users.CreateUser(suite.ctx, &models.User{Email: "tech@gearguard.com"})

	assert.True(suite.T(), models.IsKind(err, models.KindConflict))
	suite.db.AssertNotCalled(suite.T(), "CreateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// the email index is eventually consistent, so both registrations may see no
// user; the claim table decides
func (suite *RepositoryTestSuite) TestCreateUserEmailAlreadyClaimed() {
	suite.expectUserByEmail("race@gearguard.com", nil)
	suite.expectEmailClaim("race@gearguard.com", dal.ErrDuplicateKey)

	_, err := suite.users.CreateUser(suite.ctx, &models.User{Email: "race@gearguard.com"})

	assert.True(suite.T(), models.IsKind(err, models.KindConflict))
	suite.db.AssertNotCalled(suite.T(), "CreateItem", suite.ctx, "test_users", "id", mock.Anything)
}

func (suite *RepositoryTestSuite) TestCreateUserUniqueIndexViolation() {
	suite.expectUserByEmail("race@gearguard.com", nil)
	suite.expectEmailClaim("race@gearguard.com", nil)
	suite.db.On("CreateItem", suite.ctx, "test_users", "id", mock.Anything).Return(dal.ErrDuplicateKey)
	suite.db.On("DeleteItem", suite.ctx, "test_user_emails", "email", "race@gearguard.com").Return(nil).Once()

	_, err := suite.users.CreateUser(suite.ctx, &models.User{Email: "race@gearguard.com"})

	assert.True(suite.T(), models.IsKind(err, models.KindConflict))
}

func (suite *RepositoryTestSuite) TestCreateUserStoreErrorReleasesClaim() {
	suite.expectUserByEmail("new@gearguard.com", nil)
	suite.expectEmailClaim("new@gearguard.com", nil)
	suite.db.On("CreateItem", suite.ctx, "test_users", "id", mock.Anything).Return(errors.New("throttled"))
	suite.db.On("DeleteItem", suite.ctx, "test_user_emails", "email", "new@gearguard.com").Return(nil).Once()

	_, err := suite.users.CreateUser(suite.ctx, &models.User{Email: "new@gearguard.com"})

	assert.ErrorContains(suite.T(), err, "throttled")
}

func (suite *RepositoryTestSuite) TestGetUserByEmailNotFound() {
	suite.expectUserByEmail("ghost@gearguard.com", nil)

	user, err := suite.users.GetUserByEmail(suite.ctx, "ghost@gearguard.com")

	assert.Nil(suite.T(), user)
	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

func (suite *RepositoryTestSuite) TestGetUserByEmptyResetToken() {
	_, err := suite.users.GetUserByResetToken(suite.ctx, "")
	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

func (suite *RepositoryTestSuite) TestConsumeResetTokenIsConditional() {
	suite.db.On("UpdateItemIf", suite.ctx, "test_users", "id", "user_1", mock.MatchedBy(func(u map[string]interface{}) bool {
		token, hasToken := u["resetToken"]
		expires, hasExpires := u["resetExpires"]
		return u["passwordHash"] == "hash" && hasToken && token == nil && hasExpires && expires == nil
	}), map[string]interface{}{"resetToken": "tok"}).Return(nil)

	assert.NoError(suite.T(), suite.users.ConsumeResetToken(suite.ctx, "user_1", "tok", "hash"))
}

func (suite *RepositoryTestSuite) TestConsumeResetTokenAlreadyUsed() {
	suite.db.On("UpdateItemIf", suite.ctx, "test_users", "id", "user_1", mock.Anything, mock.Anything).
		Return(nil).Once()
	suite.db.On("UpdateItemIf", suite.ctx, "test_users", "id", "user_1", mock.Anything, mock.Anything).
		Return(dal.ErrConditionFailed).Once()

	require.NoError(suite.T(), suite.users.ConsumeResetToken(suite.ctx, "user_1", "tok", "hash"))

	err := suite.users.ConsumeResetToken(suite.ctx, "user_1", "tok", "other")
	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

func (suite *RepositoryTestSuite) TestSetResetTokenMissingUser() {
	suite.db.On("UpdateItem", suite.ctx, "test_users", "id", "user_x", mock.Anything).Return(dal.ErrNotFound)

	err := suite.users.SetResetToken(suite.ctx, "user_x", "abc", time.Now().Add(time.Hour))

	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

func (suite *RepositoryTestSuite) TestListUsersByRole() {
	suite.db.On("QueryByIndex", suite.ctx, "test_users", "role-index", "role", "Technician", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(5).(*[]*models.User) = []*models.User{{ID: "user_1"}, {ID: "user_2"}}
		}).Return(nil)

	users, err := suite.users.ListUsersByRole(suite.ctx, models.RoleTechnician)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 2)
}

func (suite *RepositoryTestSuite) TestListEquipmentInCreationOrder() {
	now := time.Now()
	suite.db.On("ScanTable", suite.ctx, "test_equipment", mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]*models.Equipment) = []*models.Equipment{
			{ID: "eq_2", CreatedAt: now},
			{ID: "eq_1", CreatedAt: now.Add(-time.Hour)},
		}
	}).Return(nil)

	items, err := suite.equipment.ListEquipment(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "eq_1", items[0].ID)
	assert.Equal(suite.T(), "eq_2", items[1].ID)
}

func (suite *RepositoryTestSuite) TestGetEquipmentNotFound() {
	suite.db.On("GetItem", suite.ctx, mock.Anything, mock.AnythingOfType("*models.Equipment")).Return(nil)

	_, err := suite.equipment.GetEquipment(suite.ctx, "eq_missing")

	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

func (suite *RepositoryTestSuite) TestUpdateEquipmentKeepsCreatedAt() {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.db.On("GetItem", suite.ctx, mock.Anything, mock.AnythingOfType("*models.Equipment")).Run(func(args mock.Arguments) {
		*args.Get(2).(*models.Equipment) = models.Equipment{ID: "eq_1", CreatedAt: created}
	}).Return(nil)
	suite.db.On("PutItem", suite.ctx, "test_equipment", mock.AnythingOfType("*models.Equipment")).Return(nil)

	updated, err := suite.equipment.UpdateEquipment(suite.ctx, &models.Equipment{ID: "eq_1", Name: "Press"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), created, updated.CreatedAt)
	assert.Equal(suite.T(), "Press", updated.Name)
}

func (suite *RepositoryTestSuite) TestCountEquipmentByStatus() {
	suite.db.On("CountItems", suite.ctx, "test_equipment", map[string]string{"status": "Overdue"}).Return(int64(2), nil)
	suite.db.On("CountItems", suite.ctx, "test_equipment", map[string]string(nil)).Return(int64(7), nil)

	overdue, err := suite.equipment.CountEquipment(suite.ctx, models.EquipmentOverdue)
	require.NoError(suite.T(), err)
	total, err := suite.equipment.CountEquipment(suite.ctx, "")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), int64(2), overdue)
	assert.Equal(suite.T(), int64(7), total)
}

func (suite *RepositoryTestSuite) TestListRequestsNewestFirstWithFilter() {
	now := time.Now()
	suite.db.On("QueryByIndex", suite.ctx, "test_maintenance_requests", "status-index", "status", "New", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(5).(*[]*models.MaintenanceRequest) = []*models.MaintenanceRequest{
				{ID: "req_old", Status: models.StatusNew, AssignedToEmail: "tech@gearguard.com", CreatedAt: now.Add(-time.Hour)},
				{ID: "req_other", Status: models.StatusNew, AssignedToEmail: "other@gearguard.com", CreatedAt: now},
				{ID: "req_new", Status: models.StatusNew, AssignedToEmail: "tech@gearguard.com", CreatedAt: now.Add(time.Minute)},
			}
		}).Return(nil)

	requests, err := suite.requests.ListRequests(suite.ctx, models.RequestFilter{Status: "New", AssignedToEmail: "tech@gearguard.com"})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), requests, 2)
	assert.Equal(suite.T(), "req_new", requests[0].ID)
	assert.Equal(suite.T(), "req_old", requests[1].ID)
}

func (suite *RepositoryTestSuite) TestListRequestsStoreError() {
	suite.db.On("ScanTable", suite.ctx, "test_maintenance_requests", mock.Anything).Return(errors.New("boom"))

	_, err := suite.requests.ListRequests(suite.ctx, models.RequestFilter{})

	assert.EqualError(suite.T(), err, "boom")
}

func (suite *RepositoryTestSuite) TestUpdateRequestMissing() {
	suite.db.On("UpdateItem", suite.ctx, "test_maintenance_requests", "id", "req_x", mock.Anything).Return(dal.ErrNotFound)

	_, err := suite.requests.UpdateRequest(suite.ctx, "req_x", map[string]interface{}{"status": "Repaired"})

	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

func (suite *RepositoryTestSuite) TestUpdateRequestReturnsStoredDocument() {
	suite.db.On("UpdateItem", suite.ctx, "test_maintenance_requests", "id", "req_1", mock.MatchedBy(func(u map[string]interface{}) bool {
		_, stamped := u["updatedAt"]
		return u["status"] == "Repaired" && stamped
	})).Return(nil)
	suite.db.On("GetItem", suite.ctx, mock.Anything, mock.AnythingOfType("*models.MaintenanceRequest")).Run(func(args mock.Arguments) {
		*args.Get(2).(*models.MaintenanceRequest) = models.MaintenanceRequest{ID: "req_1", Status: models.StatusRepaired}
	}).Return(nil)

	request, err := suite.requests.UpdateRequest(suite.ctx, "req_1", map[string]interface{}{"status": "Repaired"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusRepaired, request.Status)
}

func (suite *RepositoryTestSuite) TestCreateTeamDefaultsLists() {
	suite.db.On("CreateItem", suite.ctx, "test_teams", "id", mock.AnythingOfType("*models.Team")).Return(nil)

	team, err := suite.teams.CreateTeam(suite.ctx, &models.Team{Name: "Mechanics", Lead: "Jane"})

	require.NoError(suite.T(), err)
	assert.Regexp(suite.T(), "^team_", team.ID)
	assert.NotNil(suite.T(), team.Members)
	assert.NotNil(suite.T(), team.AssignedEquipment)
}

func (suite *RepositoryTestSuite) TestUpdateTeamKeepsAssignedEquipment() {
	suite.db.On("GetItem", suite.ctx, mock.Anything, mock.AnythingOfType("*models.Team")).Run(func(args mock.Arguments) {
		*args.Get(2).(*models.Team) = models.Team{ID: "team_1", AssignedEquipment: []string{"eq_1"}}
	}).Return(nil)
	suite.db.On("PutItem", suite.ctx, "test_teams", mock.AnythingOfType("*models.Team")).Return(nil)

	team, err := suite.teams.UpdateTeam(suite.ctx, &models.Team{ID: "team_1", Name: "Electricians"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"eq_1"}, team.AssignedEquipment)
	assert.Equal(suite.T(), []string{}, team.Members)
}

func (suite *RepositoryTestSuite) TestListEventsSortedByDate() {
	suite.db.On("ScanTable", suite.ctx, "test_calendar_events", mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]*models.CalendarEvent) = []*models.CalendarEvent{
			{ID: "evt_2", Date: "2026-11-02"},
			{ID: "evt_1", Date: "2026-10-20"},
		}
	}).Return(nil)

	events, err := suite.calendar.ListEvents(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "evt_1", events[0].ID)
}

func (suite *RepositoryTestSuite) TestCreateEventAssignsID() {
	suite.db.On("CreateItem", suite.ctx, "test_calendar_events", "id", mock.Anything).Return(nil)

	event, err := suite.calendar.CreateEvent(suite.ctx, &models.CalendarEvent{Title: "Inspection", Date: "2026-10-20"})

	require.NoError(suite.T(), err)
	assert.Regexp(suite.T(), "^evt_", event.ID)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestRepositoryContainer(t *testing.T) {
	container := NewRepositoryContainer(&MockDatabaseClient{}, &models.Config{}, logger.NewNopLogger())

	assert.NotNil(t, container.GetUserRepository())
	assert.NotNil(t, container.GetEquipmentRepository())
	assert.NotNil(t, container.GetMaintenanceRequestRepository())
	assert.NotNil(t, container.GetTeamRepository())
	assert.NotNil(t, container.GetCalendarRepository())
}
