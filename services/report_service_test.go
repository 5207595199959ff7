package services

import (
	"context"
	"errors"
	"testing"

	"gearguard-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSummary(t *testing.T) {
	ctx := context.Background()
	equipmentRepo := &MockEquipmentRepository{}
	requestRepo := &MockRequestRepository{}

	equipmentRepo.On("CountEquipment", ctx, models.EquipmentStatus("")).Return(int64(12), nil)
	equipmentRepo.On("CountEquipment", ctx, models.EquipmentOverdue).Return(int64(2), nil)
	requestRepo.On("CountRequests", ctx, models.RequestStatus("")).Return(int64(30), nil)
	requestRepo.On("CountRequests", ctx, models.StatusRepaired).Return(int64(18), nil)

	summary, err := NewReportService(equipmentRepo, requestRepo, newMockLogger()).Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, &models.ReportSummary{
		TotalEquipment:      12,
		MaintenanceRequests: 30,
		CompletedRequests:   18,
		OverdueEquipment:    2,
	}, summary)
}

func TestReportSummaryStoreError(t *testing.T) {
	ctx := context.Background()
	equipmentRepo := &MockEquipmentRepository{}
	equipmentRepo.On("CountEquipment", ctx, models.EquipmentStatus("")).Return(int64(0), errors.New("down"))

	_, err := NewReportService(equipmentRepo, &MockRequestRepository{}, newMockLogger()).Summary(ctx)

	assert.EqualError(t, err, "down")
}

func TestDirectoryListTechnicians(t *testing.T) {
	ctx := context.Background()
	userRepo := &MockUserRepository{}
	userRepo.On("ListUsersByRole", ctx, models.RoleTechnician).Return([]*models.User{
		{Email: "tech@gearguard.com", Name: "Tech User", PasswordHash: "secret"},
	}, nil)

	technicians, err := NewDirectoryService(userRepo, newMockLogger()).ListTechnicians(ctx)

	require.NoError(t, err)
	assert.Equal(t, []models.Technician{{Email: "tech@gearguard.com", Name: "Tech User"}}, technicians)
}

func TestDirectoryIsTechnicianExactRole(t *testing.T) {
	ctx := context.Background()
	userRepo := &MockUserRepository{}
	userRepo.On("GetUserByEmail", ctx, "tech@gearguard.com").Return(&models.User{Role: models.RoleTechnician}, nil)
	userRepo.On("GetUserByEmail", ctx, "odd@gearguard.com").Return(&models.User{Role: models.Role("technician")}, nil)
	userRepo.On("GetUserByEmail", ctx, "ghost@gearguard.com").Return(nil, models.NewNotFoundError("User not found"))
	directory := NewDirectoryService(userRepo, newMockLogger())

	ok, err := directory.IsTechnician(ctx, "tech@gearguard.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = directory.IsTechnician(ctx, "odd@gearguard.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = directory.IsTechnician(ctx, "ghost@gearguard.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCalendarListEvents(t *testing.T) {
	ctx := context.Background()
	repo := &MockCalendarRepository{}
	repo.On("ListEvents", ctx).Return([]*models.CalendarEvent{{ID: "evt_1", Date: "2026-10-20"}}, nil)

	events, err := NewCalendarService(repo, newMockLogger()).ListEvents(ctx)

	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestServiceContainer(t *testing.T) {
	container := NewService(&stubRepoContainer{}, &MockTokenIssuer{}, &MockResetNotifier{}, newMockLogger(), &models.Config{})

	assert.NotNil(t, container.GetAuthService())
	assert.NotNil(t, container.GetEquipmentService())
	assert.NotNil(t, container.GetMaintenanceRequestService())
	assert.NotNil(t, container.GetTeamService())
	assert.NotNil(t, container.GetDirectoryService())
	assert.NotNil(t, container.GetCalendarService())
	assert.NotNil(t, container.GetReportService())
}
