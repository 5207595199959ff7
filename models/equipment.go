package models

import "time"

// EquipmentStatus is the operational state of a piece of equipment
type EquipmentStatus string

const (
	EquipmentOperational   EquipmentStatus = "Operational"
	EquipmentMaintenance   EquipmentStatus = "Maintenance"
	EquipmentOverdue       EquipmentStatus = "Overdue"
	EquipmentUnoperational EquipmentStatus = "Unoperational"
)

// Valid reports whether s is a known equipment status
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentOperational, EquipmentMaintenance, EquipmentOverdue, EquipmentUnoperational:
		return true
	}
	return false
}

// Equipment is a maintainable asset
type Equipment struct {
	ID                  string          `json:"id" dynamodbav:"id" bson:"id"`
	Name                string          `json:"name" dynamodbav:"name" bson:"name"`
	Type                string          `json:"type" dynamodbav:"type" bson:"type"`
	Location            string          `json:"location" dynamodbav:"location" bson:"location"`
	Status              EquipmentStatus `json:"status" dynamodbav:"status" bson:"status"`
	LastMaintenance     string          `json:"lastMaintenance" dynamodbav:"lastMaintenance" bson:"lastMaintenance"`
	MaintenanceSchedule int             `json:"maintenanceSchedule" dynamodbav:"maintenanceSchedule" bson:"maintenanceSchedule"`
	CreatedAt           time.Time       `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// CreateEquipmentRequest represents the create payload
type CreateEquipmentRequest struct {
	Name                string `json:"name" validate:"required" example:"CNC Machine #1"`
	Type                string `json:"type" validate:"required" example:"Machinery"`
	Location            string `json:"location" example:"Plant A"`
	MaintenanceSchedule int    `json:"maintenanceSchedule" validate:"min=0" example:"30"`
}

// UpdateEquipmentRequest replaces the mutable equipment fields
type UpdateEquipmentRequest struct {
	Name                string          `json:"name" validate:"required"`
	Type                string          `json:"type" validate:"required"`
	Location            string          `json:"location"`
	Status              EquipmentStatus `json:"status" validate:"required"`
	MaintenanceSchedule int             `json:"maintenanceSchedule" validate:"min=0"`
	LastMaintenance     string          `json:"lastMaintenance"`
}
