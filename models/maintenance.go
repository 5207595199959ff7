package models

import "time"

// RequestStatus is the kanban column of a maintenance request
type RequestStatus string

const (
	StatusNew        RequestStatus = "New"
	StatusInProgress RequestStatus = "In Progress"
	StatusRepaired   RequestStatus = "Repaired"
	StatusScrap      RequestStatus = "Scrap"
)

// Valid reports whether s is one of the four workflow states
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusRepaired, StatusScrap:
		return true
	}
	return false
}

// strictTransitions lists the moves allowed when strict transitions are enabled
var strictTransitions = map[RequestStatus][]RequestStatus{
	StatusNew:        {StatusInProgress, StatusScrap},
	StatusInProgress: {StatusNew, StatusRepaired, StatusScrap},
	StatusRepaired:   {StatusInProgress},
	StatusScrap:      {},
}

// CanTransition reports whether a request may move from one status to another.
// In permissive mode any move between known states is allowed.
func CanTransition(from, to RequestStatus, strict bool) bool {
	if !to.Valid() {
		return false
	}
	if from == to || !strict {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RequestType distinguishes planned from reactive work
type RequestType string

const (
	RequestPreventive RequestType = "Preventive"
	RequestCorrective RequestType = "Corrective"
)

func (t RequestType) Valid() bool {
	return t == RequestPreventive || t == RequestCorrective
}

// Priority of a maintenance request
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// MaintenanceRequest is a unit of maintenance work against one piece of equipment.
// EquipmentName and AssignedTeamName are snapshots taken when the request is written.
type MaintenanceRequest struct {
	ID               string        `json:"id" dynamodbav:"id" bson:"id"`
	EquipmentID      string        `json:"equipmentId" dynamodbav:"equipmentId" bson:"equipmentId"`
	EquipmentName    string        `json:"equipmentName" dynamodbav:"equipmentName" bson:"equipmentName"`
	RequestType      RequestType   `json:"requestType" dynamodbav:"requestType" bson:"requestType"`
	Status           RequestStatus `json:"status" dynamodbav:"status" bson:"status"`
	Priority         Priority      `json:"priority" dynamodbav:"priority" bson:"priority"`
	Description      string        `json:"description" dynamodbav:"description" bson:"description"`
	RequestedBy      string        `json:"requestedBy" dynamodbav:"requestedBy" bson:"requestedBy"`
	AssignedToEmail  string        `json:"assignedToEmail,omitempty" dynamodbav:"assignedToEmail,omitempty" bson:"assignedToEmail,omitempty"`
	AssignedTeamID   string        `json:"assignedTeamId,omitempty" dynamodbav:"assignedTeamId,omitempty" bson:"assignedTeamId,omitempty"`
	AssignedTeamName string        `json:"assignedTeamName,omitempty" dynamodbav:"assignedTeamName,omitempty" bson:"assignedTeamName,omitempty"`
	CreatedDate      string        `json:"createdDate" dynamodbav:"createdDate" bson:"createdDate"`
	DueDate          string        `json:"dueDate,omitempty" dynamodbav:"dueDate,omitempty" bson:"dueDate,omitempty"`
	ScheduledDate    string        `json:"scheduledDate,omitempty" dynamodbav:"scheduledDate,omitempty" bson:"scheduledDate,omitempty"`
	CreatedAt        time.Time     `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// CreateRequestInput represents the create payload
type CreateRequestInput struct {
	EquipmentID      string `json:"equipmentId" example:"eq_0c5b..."`
	EquipmentName    string `json:"equipmentName" example:"CNC Machine #1"`
	RequestType      string `json:"requestType" example:"Corrective"`
	Status           string `json:"status,omitempty" example:"New"`
	Priority         string `json:"priority,omitempty" example:"Medium"`
	Description      string `json:"description" example:"Spindle vibration"`
	RequestedBy      string `json:"requestedBy" example:"manager@gearguard.com"`
	AssignedToEmail  string `json:"assignedToEmail,omitempty" example:"tech@gearguard.com"`
	AssignedTeamID   string `json:"assignedTeamId,omitempty"`
	AssignedTeamName string `json:"assignedTeamName,omitempty"`
	DueDate          string `json:"dueDate,omitempty" example:"2026-12-01"`
	ScheduledDate    string `json:"scheduledDate,omitempty" example:"2026-11-20"`
}

// HasAssignment reports whether any assignment field carries a value
func (in *CreateRequestInput) HasAssignment() bool {
	return in.AssignedToEmail != "" || in.AssignedTeamID != "" || in.AssignedTeamName != ""
}

// UpdateRequestInput is the PATCH payload. Only these fields can change;
// anything else in the body is ignored by the decoder.
type UpdateRequestInput struct {
	RequestType      Optional[string] `json:"requestType" swaggertype:"string"`
	Status           Optional[string] `json:"status" swaggertype:"string"`
	Priority         Optional[string] `json:"priority" swaggertype:"string"`
	Description      Optional[string] `json:"description" swaggertype:"string"`
	AssignedToEmail  Optional[string] `json:"assignedToEmail" swaggertype:"string"`
	AssignedTeamID   Optional[string] `json:"assignedTeamId" swaggertype:"string"`
	AssignedTeamName Optional[string] `json:"assignedTeamName" swaggertype:"string"`
	DueDate          Optional[string] `json:"dueDate" swaggertype:"string"`
	ScheduledDate    Optional[string] `json:"scheduledDate" swaggertype:"string"`
}

// TouchesAssignment reports whether the patch mentions any assignment field, even as null
func (in *UpdateRequestInput) TouchesAssignment() bool {
	return in.AssignedToEmail.Set || in.AssignedTeamID.Set || in.AssignedTeamName.Set
}

// RequestFilter narrows the request listing
type RequestFilter struct {
	Status          string
	EquipmentID     string
	AssignedToEmail string
	OverdueOnly     bool
}
