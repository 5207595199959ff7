package services

import (
	"context"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils/logger"
)

type TeamService struct {
	teamRepo  repository.TeamRepositoryInterface
	directory DirectoryServiceInterface
	logger    logger.Logger
}

func NewTeamService(teamRepo repository.TeamRepositoryInterface, directory DirectoryServiceInterface, log logger.Logger) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		directory: directory,
		logger:    log,
	}
}

// ListTeams returns every team with member emails resolved to display names
func (s *TeamService) ListTeams(ctx context.Context) ([]*models.TeamView, error) {
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.directory.DisplayNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*models.TeamView, 0, len(teams))
	for _, team := range teams {
		members := make([]models.TeamMember, 0, len(team.Members))
		for _, email := range team.Members {
			member := models.TeamMember{Email: email}
			if name, ok := names[email]; ok && name != "" {
				n := name
				member.Name = &n
			}
			members = append(members, member)
		}

		equipment := team.AssignedEquipment
		if equipment == nil {
			equipment = []string{}
		}

		views = append(views, &models.TeamView{
			ID:                team.ID,
			Name:              team.Name,
			Lead:              team.Lead,
			Members:           members,
			AssignedEquipment: equipment,
		})
	}
	return views, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, req *models.TeamRequest) (*models.Team, error) {
	if req.Name == "" || req.Lead == "" {
		return nil, models.NewValidationError("name and lead are required")
	}
	if err := s.validateMembers(ctx, req); err != nil {
		return nil, err
	}

	return s.teamRepo.CreateTeam(ctx, &models.Team{
		Name:    req.Name,
		Lead:    req.Lead,
		Members: memberList(req.Members),
	})
}

// UpdateTeam replaces name, lead and members of an existing team.
// Only the members are checked; name and lead are written as sent.
func (s *TeamService) UpdateTeam(ctx context.Context, id string, req *models.TeamRequest) (*models.Team, error) {
	if err := s.validateMembers(ctx, req); err != nil {
		return nil, err
	}

	return s.teamRepo.UpdateTeam(ctx, &models.Team{
		ID:      id,
		Name:    req.Name,
		Lead:    req.Lead,
		Members: memberList(req.Members),
	})
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	return s.teamRepo.DeleteTeam(ctx, id)
}

func (s *TeamService) validateMembers(ctx context.Context, req *models.TeamRequest) error {
	invalid, err := s.directory.InvalidTechnicians(ctx, req.Members)
	if err != nil {
		return err
	}
	if len(invalid) > 0 {
		s.logger.Warnf("Rejected team %s with %d invalid members", req.Name, len(invalid))
		return &models.AppError{
			Kind:    models.KindValidation,
			Message: "Invalid technician emails",
			Field:   "members",
			Invalid: invalid,
		}
	}
	return nil
}

func memberList(members []string) []string {
	if members == nil {
		return []string{}
	}
	return members
}
