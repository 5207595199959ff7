package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gearguard-backend/dal"
	"gearguard-backend/models"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

type MaintenanceRequestRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewMaintenanceRequestRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *MaintenanceRequestRepository {
	return &MaintenanceRequestRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *MaintenanceRequestRepository) table() string {
	return r.config.TableName("maintenance_requests")
}

func (r *MaintenanceRequestRepository) CreateRequest(ctx context.Context, request *models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	now := time.Now()
	request.ID = "req_" + utils.GenerateUUID()
	request.CreatedAt = now
	request.UpdatedAt = now

	if err := r.db.CreateItem(ctx, r.table(), "id", request); err != nil {
		r.logger.Errorf("Failed to create maintenance request: %v", err)
		return nil, fmt.Errorf("failed to create maintenance request: %w", err)
	}

	r.logger.Infof("Maintenance request created successfully: %s", request.ID)
	return request, nil
}

func (r *MaintenanceRequestRepository) GetRequest(ctx context.Context, id string) (*models.MaintenanceRequest, error) {
	if id == "" {
		return nil, models.NewValidationError("request ID is required")
	}

	request := models.MaintenanceRequest{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &request)
	if err != nil {
		r.logger.Errorf("Failed to get maintenance request %s: %v", id, err)
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}

	if request.ID == "" {
		return nil, models.NewNotFoundError("Maintenance request not found")
	}
	return &request, nil
}

// ListRequests returns matching requests, newest first
func (r *MaintenanceRequestRepository) ListRequests(ctx context.Context, filter models.RequestFilter) ([]*models.MaintenanceRequest, error) {
	var requests []*models.MaintenanceRequest
	var err error

	if filter.Status != "" {
		err = r.db.QueryByIndex(ctx, r.table(), "status-index", "status", filter.Status, &requests)
	} else if filter.EquipmentID != "" {
		err = r.db.QueryByIndex(ctx, r.table(), "equipmentId-index", "equipmentId", filter.EquipmentID, &requests)
	} else {
		err = r.db.ScanTable(ctx, r.table(), &requests)
	}
	if err != nil {
		r.logger.Errorf("Failed to list maintenance requests: %v", err)
		return nil, err
	}

	filtered := r.applyAdditionalFilters(requests, filter)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	r.logger.Infof("Found %d maintenance requests", len(filtered))
	return filtered, nil
}

// UpdateRequest applies a partial update and returns the stored document.
// A nil value removes the field.
func (r *MaintenanceRequestRepository) UpdateRequest(ctx context.Context, id string, updates map[string]interface{}) (*models.MaintenanceRequest, error) {
	updates["updatedAt"] = time.Now()

	err := r.db.UpdateItem(ctx, r.table(), "id", id, updates)
	if errors.Is(err, dal.ErrNotFound) {
		return nil, models.NewNotFoundError("Maintenance request not found")
	}
	if err != nil {
		r.logger.Errorf("Failed to update maintenance request %s: %v", id, err)
		return nil, fmt.Errorf("failed to update maintenance request: %w", err)
	}

	return r.GetRequest(ctx, id)
}

func (r *MaintenanceRequestRepository) DeleteRequest(ctx context.Context, id string) error {
	r.logger.Infof("Deleting maintenance request: %s", id)

	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete maintenance request: %v", err)
		return err
	}
	return nil
}

// CountRequests counts requests with the given status, or all requests when status is empty
func (r *MaintenanceRequestRepository) CountRequests(ctx context.Context, status models.RequestStatus) (int64, error) {
	var filter map[string]string
	if status != "" {
		filter = map[string]string{"status": string(status)}
	}
	return r.db.CountItems(ctx, r.table(), filter)
}

func (r *MaintenanceRequestRepository) applyAdditionalFilters(requests []*models.MaintenanceRequest, filter models.RequestFilter) []*models.MaintenanceRequest {
	filtered := make([]*models.MaintenanceRequest, 0, len(requests))
	for _, request := range requests {
		if filter.Status != "" && string(request.Status) != filter.Status {
			continue
		}
		if filter.EquipmentID != "" && request.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.AssignedToEmail != "" && request.AssignedToEmail != filter.AssignedToEmail {
			continue
		}
		filtered = append(filtered, request)
	}
	return filtered
}
