package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/repository"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/password"

	"gorm.io/gorm"
)

// UserService handles registration, login and user lookup.
type UserService struct {
	repo       *repository.UserRepository
	jwtService *jwt.JWTService
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.UserRepository, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

// Register creates an account and issues a token.
func (s *UserService) Register(username, email, plainPassword string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || plainPassword == "" {
		return nil, "", apperr.Validation("username and password are required")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       "offline",
		LastSeen:     time.Now(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", user.ID),
		map[string]interface{}{"username": user.Username},
	)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token.
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", apperr.Validation("identifier and password are required")
	}
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		return nil, "", apperr.Validation("invalid credentials")
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", apperr.Validation("invalid credentials")
	}
	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", u.ID),
		map[string]interface{}{"username": u.Username},
	)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout flips the user's status to offline.
func (s *UserService) Logout(userID uint) error {
	return s.repo.UpdateStatus(userID, "offline")
}

// GetByID loads one user.
func (s *UserService) GetByID(id uint) (*model.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return u, nil
}

// Search finds users by username prefix, for friend pickers.
func (s *UserService) Search(prefix string, limit int) ([]*model.User, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, apperr.Validation("search prefix is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.SearchByUsername(prefix, limit)
}
