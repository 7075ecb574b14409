package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fashion-store/models"
	"fashion-store/repositories"
	"fashion-store/utils"

	log "github.com/sirupsen/logrus"
)

const RoleAdmin = "admin"

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthService struct {
	users  UserStore
	secret string
	expiry time.Duration
}

func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, expiry: expiry}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.secret, s.expiry)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{Email: strings.ToLower(email), Password: hashed, Role: RoleAdmin}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	log.WithField("email", user.Email).Info("admin user created")
	return nil
}
