package services

import (
	"context"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

const (
	assignmentForbiddenMessage = "Technicians cannot assign teams or technicians to requests"
	scheduleForbiddenMessage   = "Technicians cannot create scheduled requests via calendar"
	scheduledDeleteMessage     = "Technicians cannot remove scheduled requests via calendar"
	invalidAssigneeMessage     = "assignedToEmail must be a valid Technician email"
)

// MaintenanceRequestService applies the role and date rules of the request workflow.
// Equipment and team names are copied onto the request when it is written and are
// not refreshed if the equipment or team is renamed later.
type MaintenanceRequestService struct {
	requestRepo   repository.MaintenanceRequestRepositoryInterface
	equipmentRepo repository.EquipmentRepositoryInterface
	teamRepo      repository.TeamRepositoryInterface
	directory     DirectoryServiceInterface
	logger        logger.Logger
	strict        bool
	now           func() time.Time
}

func NewMaintenanceRequestService(
	requestRepo repository.MaintenanceRequestRepositoryInterface,
	equipmentRepo repository.EquipmentRepositoryInterface,
	teamRepo repository.TeamRepositoryInterface,
	directory DirectoryServiceInterface,
	log logger.Logger,
	cfg *models.Config,
) *MaintenanceRequestService {
	return &MaintenanceRequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		directory:     directory,
		logger:        log,
		strict:        cfg.StrictStatusTransitions,
		now:           time.Now,
	}
}

// ListRequests returns requests newest first. OverdueOnly keeps requests whose
// due date has passed and that are not Repaired.
func (s *MaintenanceRequestService) ListRequests(ctx context.Context, filter models.RequestFilter) ([]*models.MaintenanceRequest, error) {
	requests, err := s.requestRepo.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !filter.OverdueOnly {
		return requests, nil
	}

	now := s.now()
	overdue := make([]*models.MaintenanceRequest, 0, len(requests))
	for _, request := range requests {
		if request.DueDate == "" || request.Status == models.StatusRepaired {
			continue
		}
		if past, err := utils.IsBeforeToday(request.DueDate, now); err == nil && past {
			overdue = append(overdue, request)
		}
	}
	return overdue, nil
}

func (s *MaintenanceRequestService) CreateRequest(ctx context.Context, role models.Role, in *models.CreateRequestInput) (*models.MaintenanceRequest, error) {
	if err := s.checkDates(in.ScheduledDate, in.DueDate); err != nil {
		return nil, err
	}

	if role.IsTechnician() {
		if in.HasAssignment() {
			return nil, models.NewAuthorizationError(assignmentForbiddenMessage)
		}
		if in.ScheduledDate != "" {
			return nil, models.NewAuthorizationError(scheduleForbiddenMessage)
		}
	}

	if in.EquipmentID == "" {
		return nil, models.NewFieldError("equipmentId", "equipmentId is required")
	}

	requestType := models.RequestType(in.RequestType)
	if !requestType.Valid() {
		return nil, models.NewFieldError("requestType", "requestType must be Preventive or Corrective")
	}

	status := models.StatusNew
	if in.Status != "" {
		status = models.RequestStatus(in.Status)
		if !status.Valid() {
			return nil, invalidStatusError()
		}
	}

	priority := models.PriorityMedium
	if in.Priority != "" {
		priority = models.Priority(in.Priority)
		if !priority.Valid() {
			return nil, models.NewFieldError("priority", "priority must be Low, Medium or High")
		}
	}

	if in.AssignedToEmail != "" {
		if err := s.checkAssignee(ctx, in.AssignedToEmail); err != nil {
			return nil, err
		}
	}

	equipmentName := in.EquipmentName
	if equipmentName == "" {
		equipment, err := s.equipmentRepo.GetEquipment(ctx, in.EquipmentID)
		if models.IsKind(err, models.KindNotFound) {
			return nil, models.NewFieldError("equipmentId", "equipmentId does not reference known equipment")
		}
		if err != nil {
			return nil, err
		}
		equipmentName = equipment.Name
	}

	teamName := in.AssignedTeamName
	if in.AssignedTeamID != "" && teamName == "" {
		name, err := s.teamName(ctx, in.AssignedTeamID)
		if err != nil {
			return nil, err
		}
		teamName = name
	}

	request := &models.MaintenanceRequest{
		EquipmentID:      in.EquipmentID,
		EquipmentName:    equipmentName,
		RequestType:      requestType,
		Status:           status,
		Priority:         priority,
		Description:      in.Description,
		RequestedBy:      in.RequestedBy,
		AssignedToEmail:  in.AssignedToEmail,
		AssignedTeamID:   in.AssignedTeamID,
		AssignedTeamName: teamName,
		CreatedDate:      utils.FormatDate(s.now()),
		DueDate:          in.DueDate,
		ScheduledDate:    in.ScheduledDate,
	}

	return s.requestRepo.CreateRequest(ctx, request)
}

// UpdateRequest applies a patch of the mutable fields. A technician patch that
// mentions any assignment field is rejected even when the value is null.
func (s *MaintenanceRequestService) UpdateRequest(ctx context.Context, role models.Role, id string, in *models.UpdateRequestInput) (*models.MaintenanceRequest, error) {
	scheduled, _ := in.ScheduledDate.Get()
	due, _ := in.DueDate.Get()
	if err := s.checkDates(scheduled, due); err != nil {
		return nil, err
	}

	if role.IsTechnician() && in.TouchesAssignment() {
		return nil, models.NewAuthorizationError(assignmentForbiddenMessage)
	}

	if email, ok := in.AssignedToEmail.Get(); ok && email != "" {
		if err := s.checkAssignee(ctx, email); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})

	if in.RequestType.Set {
		requestType := models.RequestType(in.RequestType.Value)
		if in.RequestType.Null || !requestType.Valid() {
			return nil, models.NewFieldError("requestType", "requestType must be Preventive or Corrective")
		}
		updates["requestType"] = string(requestType)
	}

	var newStatus models.RequestStatus
	if in.Status.Set {
		newStatus = models.RequestStatus(in.Status.Value)
		if in.Status.Null || !newStatus.Valid() {
			return nil, invalidStatusError()
		}
		updates["status"] = string(newStatus)
	}

	if in.Priority.Set {
		priority := models.Priority(in.Priority.Value)
		if in.Priority.Null || !priority.Valid() {
			return nil, models.NewFieldError("priority", "priority must be Low, Medium or High")
		}
		updates["priority"] = string(priority)
	}

	setOptional(updates, "description", in.Description)
	setOptional(updates, "assignedToEmail", in.AssignedToEmail)
	setOptional(updates, "assignedTeamId", in.AssignedTeamID)
	setOptional(updates, "assignedTeamName", in.AssignedTeamName)
	setOptional(updates, "dueDate", in.DueDate)
	setOptional(updates, "scheduledDate", in.ScheduledDate)

	existing, err := s.requestRepo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if newStatus != "" && !models.CanTransition(existing.Status, newStatus, s.strict) {
		return nil, models.NewFieldError("status", "cannot move request from "+string(existing.Status)+" to "+string(newStatus))
	}

	if teamID, ok := in.AssignedTeamID.Get(); ok && teamID != "" && !in.AssignedTeamName.Set {
		name, err := s.teamName(ctx, teamID)
		if err != nil {
			return nil, err
		}
		updates["assignedTeamName"] = name
	}

	if len(updates) == 0 {
		return existing, nil
	}

	updated, err := s.requestRepo.UpdateRequest(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Maintenance request %s updated (%d fields)", id, len(updates))
	return updated, nil
}

// DeleteRequest removes a request. Technicians cannot remove scheduled requests.
func (s *MaintenanceRequestService) DeleteRequest(ctx context.Context, role models.Role, id string) error {
	existing, err := s.requestRepo.GetRequest(ctx, id)
	if err != nil {
		return err
	}

	if role.IsTechnician() && existing.ScheduledDate != "" {
		return models.NewAuthorizationError(scheduledDeleteMessage)
	}

	return s.requestRepo.DeleteRequest(ctx, id)
}

// checkDates rejects scheduled or due dates before today, scheduled first
func (s *MaintenanceRequestService) checkDates(scheduledDate, dueDate string) error {
	now := s.now()

	for _, d := range []struct{ field, value string }{
		{"scheduledDate", scheduledDate},
		{"dueDate", dueDate},
	} {
		if d.value == "" {
			continue
		}
		past, err := utils.IsBeforeToday(d.value, now)
		if err != nil {
			return models.NewFieldError(d.field, d.field+" must be a valid date")
		}
		if past {
			return models.NewFieldError(d.field, d.field+" cannot be in the past")
		}
	}
	return nil
}

func (s *MaintenanceRequestService) checkAssignee(ctx context.Context, email string) error {
	ok, err := s.directory.IsTechnician(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewFieldError("assignedToEmail", invalidAssigneeMessage)
	}
	return nil
}

func (s *MaintenanceRequestService) teamName(ctx context.Context, id string) (string, error) {
	team, err := s.teamRepo.GetTeam(ctx, id)
	if models.IsKind(err, models.KindNotFound) {
		return "", models.NewFieldError("assignedTeamId", "assignedTeamId does not reference a known team")
	}
	if err != nil {
		return "", err
	}
	return team.Name, nil
}

func invalidStatusError() error {
	return models.NewFieldError("status", "status must be one of New, In Progress, Repaired, Scrap")
}

// setOptional copies a present field into updates; null or empty clears it
func setOptional(updates map[string]interface{}, field string, value models.Optional[string]) {
	if !value.Set {
		return
	}
	if v, ok := value.Get(); ok && v != "" {
		updates[field] = v
		return
	}
	updates[field] = nil
}
