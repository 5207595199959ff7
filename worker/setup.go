package worker

import (
	"context"
	"fmt"
	"os"

	"gearguard-backend/dal"
	"gearguard-backend/infrastructure"
	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"

	"gopkg.in/yaml.v3"
)

// Setup creates the tables and indexes and loads seed data into empty tables
type Setup struct {
	db     dal.DatabaseClientInterface
	repos  repository.RepositoryContainerInterface
	config *models.Config
	logger logger.Logger
}

func NewSetup(db dal.DatabaseClientInterface, repos repository.RepositoryContainerInterface, cfg *models.Config, log logger.Logger) *Setup {
	return &Setup{
		db:     db,
		repos:  repos,
		config: cfg,
		logger: log,
	}
}

// LoadSeed reads a seed file
func LoadSeed(path string) (*models.SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed models.SeedData
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Run ensures every configured table exists, then seeds from seedPath when it is set
func (s *Setup) Run(ctx context.Context, seedPath string) (*models.SetupResult, error) {
	result := &models.SetupResult{TablesEnsured: []string{}}

	defs, err := infrastructure.Definitions(s.config, s.config.Tables)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		created, err := s.db.EnsureTable(ctx, def)
		if err != nil {
			return result, fmt.Errorf("ensure table %s: %w", def.TableName, err)
		}
		if created {
			s.logger.Infof("Created table %s with %d indexes", def.TableName, len(def.Indexes))
		}
		result.TablesEnsured = append(result.TablesEnsured, def.TableName)
	}

	if seedPath == "" {
		return result, nil
	}

	seed, err := LoadSeed(seedPath)
	if err != nil {
		return result, err
	}
	if err := s.Seed(ctx, seed, result); err != nil {
		return result, err
	}
	return result, nil
}

// Seed inserts seed data into each table that is still empty.
// Team equipment and event equipment references may name seeded equipment.
func (s *Setup) Seed(ctx context.Context, seed *models.SeedData, result *models.SetupResult) error {
	if err := s.seedUsers(ctx, seed.Users, result); err != nil {
		return err
	}

	equipmentIDs, err := s.seedEquipment(ctx, seed.Equipment, result)
	if err != nil {
		return err
	}

	if err := s.seedTeams(ctx, seed.Teams, equipmentIDs, result); err != nil {
		return err
	}
	return s.seedEvents(ctx, seed.Events, equipmentIDs, result)
}

func (s *Setup) seedUsers(ctx context.Context, users []models.SeedUser, result *models.SetupResult) error {
	userRepo := s.repos.GetUserRepository()
	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.logger.Infof("Users table has %d items, skipping user seed", count)
		return nil
	}

	for _, u := range users {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		if _, err := userRepo.CreateUser(ctx, &models.User{
			Email:        u.Email,
			Name:         u.Name,
			Role:         models.RegistrationRole(u.Role),
			PasswordHash: hash,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		result.UsersSeeded++
	}
	return nil
}

func (s *Setup) seedEquipment(ctx context.Context, items []models.SeedEquipment, result *models.SetupResult) (map[string]string, error) {
	equipmentRepo := s.repos.GetEquipmentRepository()
	ids := make(map[string]string)

	count, err := equipmentRepo.CountEquipment(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count equipment: %w", err)
	}
	if count > 0 {
		s.logger.Infof("Equipment table has %d items, skipping equipment seed", count)
		return ids, nil
	}

	for _, item := range items {
		status := models.EquipmentStatus(item.Status)
		if !status.Valid() {
			status = models.EquipmentOperational
		}
		created, err := equipmentRepo.CreateEquipment(ctx, &models.Equipment{
			Name:                item.Name,
			Type:                item.Type,
			Location:            item.Location,
			Status:              status,
			LastMaintenance:     item.LastMaintenance,
			MaintenanceSchedule: item.MaintenanceSchedule,
		})
		if err != nil {
			return nil, fmt.Errorf("seed equipment %s: %w", item.Name, err)
		}
		ids[item.Name] = created.ID
		result.ItemsSeeded++
	}
	return ids, nil
}

func (s *Setup) seedTeams(ctx context.Context, teams []models.SeedTeam, equipmentIDs map[string]string, result *models.SetupResult) error {
	teamRepo := s.repos.GetTeamRepository()
	existing, err := teamRepo.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, t := range teams {
		assigned := make([]string, 0, len(t.AssignedEquipment))
		for _, ref := range t.AssignedEquipment {
			assigned = append(assigned, resolveEquipment(ref, equipmentIDs))
		}
		members := t.Members
		if members == nil {
			members = []string{}
		}
		if _, err := teamRepo.CreateTeam(ctx, &models.Team{
			Name:              t.Name,
			Lead:              t.Lead,
			Members:           members,
			AssignedEquipment: assigned,
		}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
		result.ItemsSeeded++
	}
	return nil
}

func (s *Setup) seedEvents(ctx context.Context, events []models.CalendarEvent, equipmentIDs map[string]string, result *models.SetupResult) error {
	calendarRepo := s.repos.GetCalendarRepository()
	existing, err := calendarRepo.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("list calendar events: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, e := range events {
		event := e
		if event.EquipmentID != "" {
			event.EquipmentID = resolveEquipment(event.EquipmentID, equipmentIDs)
		}
		if _, err := calendarRepo.CreateEvent(ctx, &event); err != nil {
			return fmt.Errorf("seed calendar event %s: %w", e.Title, err)
		}
		result.ItemsSeeded++
	}
	return nil
}

// resolveEquipment maps a seeded equipment name to its generated id; other values pass through
func resolveEquipment(ref string, ids map[string]string) string {
	if id, ok := ids[ref]; ok {
		return id
	}
	return ref
}
