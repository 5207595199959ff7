package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

const (
	invalidCredentialsMessage = "Invalid email or password"
	invalidResetTokenMessage  = "Invalid or expired reset token"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// dummyPasswordHash is compared against when the email is unknown so both
// login failures cost one bcrypt comparison
func dummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("gearguard-dummy-password")
	})
	return dummyHash
}

type AuthService struct {
	userRepo repository.UserRepositoryInterface
	tokens   TokenIssuer
	notifier ResetNotifier
	logger   logger.Logger
	resetTTL time.Duration
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepositoryInterface, tokens TokenIssuer, notifier ResetNotifier, log logger.Logger, cfg *models.Config) *AuthService {
	ttl := cfg.PasswordResetTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		notifier: notifier,
		logger:   log,
		resetTTL: ttl,
		now:      time.Now,
	}
}

// Login checks the credentials and issues an access token.
// Unknown emails and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if models.IsKind(err, models.KindNotFound) {
			utils.CheckPassword(dummyPasswordHash(), req.Password)
			return nil, models.NewAuthenticationError(invalidCredentialsMessage)
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warnf("Failed login for user %s", user.ID)
		return nil, models.NewAuthenticationError(invalidCredentialsMessage)
	}

	token, expiresIn, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, models.NewInternalError("failed to issue token", err)
	}

	s.logger.Infof("User %s logged in", user.ID)
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn.Seconds()),
		User:        user.Profile(),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, models.NewValidationError("Missing required fields")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, models.NewInternalError("failed to hash password", err)
	}

	user, err := s.userRepo.CreateUser(ctx, &models.User{
		Email:        strings.TrimSpace(req.Email),
		Name:         req.Name,
		Role:         models.RegistrationRole(req.Role),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

// ForgotPassword stores a reset token for a known email and hands it to the notifier.
// Unknown emails succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return models.NewFieldError("email", "Email is required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if models.IsKind(err, models.KindNotFound) {
		s.logger.Debugf("Password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return models.NewInternalError("failed to generate reset token", err)
	}
	expires := s.now().Add(s.resetTTL)

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	if err := s.notifier.SendResetToken(ctx, user, token, expires); err != nil {
		s.logger.Errorf("Failed to deliver reset token for user %s: %v", user.ID, err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return models.NewValidationError("Token and new password are required")
	}

	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if models.IsKind(err, models.KindNotFound) {
		return models.NewValidationError(invalidResetTokenMessage)
	}
	if err != nil {
		return err
	}

	if user.ResetToken != token || user.ResetExpires == nil || user.ResetExpires.Before(s.now()) {
		return models.NewValidationError(invalidResetTokenMessage)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.NewInternalError("failed to hash password", err)
	}

	// the write only lands while the stored token is still this one
	err = s.userRepo.ConsumeResetToken(ctx, user.ID, token, hash)
	if models.IsKind(err, models.KindNotFound) {
		return models.NewValidationError(invalidResetTokenMessage)
	}
	if err != nil {
		return err
	}

	s.logger.Infof("Password reset for user %s", user.ID)
	return nil
}

// LogResetNotifier writes reset tokens to the log instead of sending mail
type LogResetNotifier struct {
	logger logger.Logger
}

func NewLogResetNotifier(log logger.Logger) *LogResetNotifier {
	return &LogResetNotifier{logger: log}
}

func (n *LogResetNotifier) SendResetToken(ctx context.Context, user *models.User, token string, expires time.Time) error {
	n.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"expires": expires.Format(time.RFC3339),
	}).Infof("Password reset token issued: %s", token)
	return nil
}
