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

type EquipmentRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewEquipmentRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *EquipmentRepository {
	return &EquipmentRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *EquipmentRepository) table() string {
	return r.config.TableName("equipment")
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	r.logger.Infof("Creating equipment: %s", equipment.Name)

	now := time.Now()
	equipment.ID = "eq_" + utils.GenerateUUID()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	if err := r.db.CreateItem(ctx, r.table(), "id", equipment); err != nil {
		r.logger.Errorf("Failed to create equipment: %v", err)
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}

	r.logger.Infof("Equipment created successfully: %s", equipment.ID)
	return equipment, nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	if id == "" {
		return nil, models.NewValidationError("equipment ID is required")
	}

	equipment := models.Equipment{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &equipment)
	if err != nil {
		r.logger.Errorf("Failed to get equipment %s: %v", id, err)
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	if equipment.ID == "" {
		return nil, models.NewNotFoundError("Equipment not found")
	}
	return &equipment, nil
}

// ListEquipment returns all equipment in creation order
func (r *EquipmentRepository) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	var items []*models.Equipment
	if err := r.db.ScanTable(ctx, r.table(), &items); err != nil {
		r.logger.Errorf("Failed to list equipment: %v", err)
		return nil, err
	}

	sortEquipment(items)
	return items, nil
}

func (r *EquipmentRepository) ListEquipmentByStatus(ctx context.Context, status models.EquipmentStatus) ([]*models.Equipment, error) {
	var items []*models.Equipment
	if err := r.db.QueryByIndex(ctx, r.table(), "status-index", "status", string(status), &items); err != nil {
		r.logger.Errorf("Failed to list %s equipment: %v", status, err)
		return nil, err
	}

	sortEquipment(items)
	return items, nil
}

// UpdateEquipment replaces the stored document, keeping its creation time.
// An empty lastMaintenance keeps the stored date.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	existing, err := r.GetEquipment(ctx, equipment.ID)
	if err != nil {
		return nil, err
	}

	equipment.CreatedAt = existing.CreatedAt
	if equipment.LastMaintenance == "" {
		equipment.LastMaintenance = existing.LastMaintenance
	}
	equipment.UpdatedAt = time.Now()

	if err := r.db.PutItem(ctx, r.table(), equipment); err != nil {
		r.logger.Errorf("Failed to update equipment: %v", err)
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}

	r.logger.Infof("Equipment updated successfully: %s", equipment.ID)
	return equipment, nil
}

func (r *EquipmentRepository) SetEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) error {
	err := r.db.UpdateItem(ctx, r.table(), "id", id, map[string]interface{}{
		"status":    string(status),
		"updatedAt": time.Now(),
	})
	if errors.Is(err, dal.ErrNotFound) {
		return models.NewNotFoundError("Equipment not found")
	}
	return err
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	r.logger.Infof("Deleting equipment: %s", id)

	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete equipment: %v", err)
		return err
	}
	return nil
}

// CountEquipment counts equipment with the given status, or all equipment when status is empty
func (r *EquipmentRepository) CountEquipment(ctx context.Context, status models.EquipmentStatus) (int64, error) {
	var filter map[string]string
	if status != "" {
		filter = map[string]string{"status": string(status)}
	}
	return r.db.CountItems(ctx, r.table(), filter)
}

func sortEquipment(items []*models.Equipment) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
