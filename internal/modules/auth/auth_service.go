package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-agency/internal/models"
	emailSvc "travel-agency/pkg/email"
	"travel-agency/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface defines the auth business logic: token issuance and
// admin-driven account registration.
type ServiceInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error)
}

// Service implements ServiceInterface. Tokens are stateless: nothing is
// stored server-side beyond the user row itself.
type Service struct {
	userRepo        RepositoryInterface
	emailer         emailSvc.ServiceInterface
	templateManager *emailSvc.TemplateManager
	jwtSecret       string
	tokenTTL        time.Duration
	logger          *zap.Logger
}

// NewService creates a new auth service. The emailer may be nil, in which
// case registration skips credential delivery and only logs the omission.
func NewService(
	userRepo RepositoryInterface,
	emailer emailSvc.ServiceInterface,
	templateManager *emailSvc.TemplateManager,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) ServiceInterface {
	return &Service{
		userRepo:        userRepo,
		emailer:         emailer,
		templateManager: templateManager,
		jwtSecret:       jwtSecret,
		tokenTTL:        tokenTTL,
		logger:          logger,
	}
}

// Login authenticates the usernameOrEmail + password pair and issues a signed
// bearer token with the username as subject.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("service.Login: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))
	return &models.AuthResponse{Token: token, Type: "Bearer"}, nil
}

// Register creates a back-office account with a generated temporary password
// and mails the credentials. Only reachable through the ADMIN gate.
func (s *Service) Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	tempPassword, err := utils.GenerateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("service.Register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register: %w", err)
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}

	user := &models.User{Username: req.Username, Email: req.Email}
	created, err := s.userRepo.CreateUser(ctx, user, string(hash), roles)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered",
		zap.String("username", created.Username), zap.Strings("roles", roles))

	if s.emailer == nil {
		s.logger.Warn("no emailer configured, skipping credential delivery",
			zap.String("username", created.Username))
		return created, nil
	}

	// Credential delivery is best-effort; the account exists either way and
	// an admin can re-issue a password out of band.
	username := created.Username
	email := created.Email
	go func() {
		htmlContent, err := s.templateManager.GenerateCredentialsEmailHTML(emailSvc.TemplateData{
			Name:     username,
			Password: tempPassword,
		})
		if err != nil {
			s.logger.Error("failed to render credentials email", zap.Error(err))
			return
		}
		plainText := fmt.Sprintf(
			"Your travel-agency back-office account is ready.\nUsername: %s\nTemporary password: %s\nPlease change it after your first login.",
			username, tempPassword)
		if err := s.emailer.SendEmail(context.Background(), email,
			"Your back-office account", plainText, htmlContent); err != nil {
			s.logger.Error("failed to send credentials email",
				zap.String("email", email), zap.Error(err))
		}
	}()

	return created, nil
}

func (s *Service) generateToken(username string) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
