package services

import (
	"context"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils/logger"
)

// DirectoryService answers questions about users and their roles
type DirectoryService struct {
	userRepo repository.UserRepositoryInterface
	logger   logger.Logger
}

func NewDirectoryService(userRepo repository.UserRepositoryInterface, log logger.Logger) *DirectoryService {
	return &DirectoryService{
		userRepo: userRepo,
		logger:   log,
	}
}

func (s *DirectoryService) ListTechnicians(ctx context.Context) ([]models.Technician, error) {
	users, err := s.userRepo.ListUsersByRole(ctx, models.RoleTechnician)
	if err != nil {
		return nil, err
	}

	technicians := make([]models.Technician, 0, len(users))
	for _, user := range users {
		technicians = append(technicians, models.Technician{Email: user.Email, Name: user.Name})
	}
	return technicians, nil
}

// IsTechnician reports whether email belongs to a user whose role is exactly Technician
func (s *DirectoryService) IsTechnician(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if models.IsKind(err, models.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleTechnician, nil
}

// InvalidTechnicians returns, in input order, the emails that are not Technician accounts
func (s *DirectoryService) InvalidTechnicians(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	technicians, err := s.userRepo.ListUsersByRole(ctx, models.RoleTechnician)
	if err != nil {
		return nil, err
	}

	valid := make(map[string]bool, len(technicians))
	for _, t := range technicians {
		valid[t.Email] = true
	}

	var invalid []string
	for _, email := range emails {
		if !valid[email] {
			invalid = append(invalid, email)
		}
	}
	return invalid, nil
}

// DisplayNames maps every user email to its display name
func (s *DirectoryService) DisplayNames(ctx context.Context) (map[string]string, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.Email] = user.Name
	}
	return names, nil
}
