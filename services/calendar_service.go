package services

import (
	"context"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils/logger"
)

type CalendarService struct {
	calendarRepo repository.CalendarRepositoryInterface
	logger       logger.Logger
}

func NewCalendarService(calendarRepo repository.CalendarRepositoryInterface, log logger.Logger) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		logger:       log,
	}
}

func (s *CalendarService) ListEvents(ctx context.Context) ([]*models.CalendarEvent, error) {
	return s.calendarRepo.ListEvents(ctx)
}
