package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gearguard-backend/dal"
	"gearguard-backend/models"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

type TeamRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewTeamRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *TeamRepository {
	return &TeamRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *TeamRepository) table() string {
	return r.config.TableName("teams")
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	r.logger.Infof("Creating team: %s", team.Name)

	now := time.Now()
	team.ID = "team_" + utils.GenerateUUID()
	team.CreatedAt = now
	team.UpdatedAt = now
	if team.Members == nil {
		team.Members = []string{}
	}
	if team.AssignedEquipment == nil {
		team.AssignedEquipment = []string{}
	}

	if err := r.db.CreateItem(ctx, r.table(), "id", team); err != nil {
		r.logger.Errorf("Failed to create team: %v", err)
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	r.logger.Infof("Team created successfully: %s", team.ID)
	return team, nil
}

func (r *TeamRepository) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	if id == "" {
		return nil, models.NewValidationError("team ID is required")
	}

	team := models.Team{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &team)
	if err != nil {
		r.logger.Errorf("Failed to get team %s: %v", id, err)
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if team.ID == "" {
		return nil, models.NewNotFoundError("Team not found")
	}
	return &team, nil
}

// ListTeams returns all teams in creation order
func (r *TeamRepository) ListTeams(ctx context.Context) ([]*models.Team, error) {
	var teams []*models.Team
	if err := r.db.ScanTable(ctx, r.table(), &teams); err != nil {
		r.logger.Errorf("Failed to list teams: %v", err)
		return nil, err
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

// UpdateTeam replaces the stored team, keeping its creation time and equipment list
func (r *TeamRepository) UpdateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	existing, err := r.GetTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	team.CreatedAt = existing.CreatedAt
	team.AssignedEquipment = existing.AssignedEquipment
	team.UpdatedAt = time.Now()
	if team.Members == nil {
		team.Members = []string{}
	}

	if err := r.db.PutItem(ctx, r.table(), team); err != nil {
		r.logger.Errorf("Failed to update team: %v", err)
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	r.logger.Infof("Team updated successfully: %s", team.ID)
	return team, nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id string) error {
	r.logger.Infof("Deleting team: %s", id)

	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete team: %v", err)
		return err
	}
	return nil
}
