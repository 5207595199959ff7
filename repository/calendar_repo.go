package repository

import (
	"context"
	"fmt"
	"sort"

	"gearguard-backend/dal"
	"gearguard-backend/models"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

type CalendarRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewCalendarRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *CalendarRepository {
	return &CalendarRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *CalendarRepository) table() string {
	return r.config.TableName("calendar_events")
}

func (r *CalendarRepository) CreateEvent(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	if event.ID == "" {
		event.ID = "evt_" + utils.GenerateUUID()
	}

	if err := r.db.CreateItem(ctx, r.table(), "id", event); err != nil {
		r.logger.Errorf("Failed to create calendar event: %v", err)
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return event, nil
}

// ListEvents returns every event ordered by date
func (r *CalendarRepository) ListEvents(ctx context.Context) ([]*models.CalendarEvent, error) {
	var events []*models.CalendarEvent
	if err := r.db.ScanTable(ctx, r.table(), &events); err != nil {
		r.logger.Errorf("Failed to list calendar events: %v", err)
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events, nil
}
