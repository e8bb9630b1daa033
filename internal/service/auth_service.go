package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and credential checks.
type AuthService struct {
	authRepo repository.Authorization
	activity Recorder
	cost     int
}

func NewAuthService(repo repository.Authorization, activity Recorder) *AuthService {
	return &AuthService{authRepo: repo, activity: activity, cost: bcrypt.DefaultCost}
}

// Register hashes the password and creates a new user.
func (s *AuthService) Register(ctx context.Context, username, password string) (int, error) {
	const op = "auth.register"

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return 0, newError(KindValidation, op, err)
	}
	id, err := s.authRepo.Create(ctx, username, hash)
	if err != nil {
		return 0, newError(KindPersistence, op, err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:    models.ActivityUserRegistered,
		UserID:  id,
		Message: fmt.Sprintf("user %q registered", username),
	})
	return id, nil
}

// Login looks the user up by exact username and verifies the password.
// The returned user never carries the password hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	const op = "auth.login"

	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, newError(KindPersistence, op, err)
	}
	if u == nil {
		return nil, newError(KindUnauthorized, op, ErrUserNotFound)
	}
	if err := verifyPassword(u.Password, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, newError(KindUnauthorized, op, ErrInvalidPassword)
		}
		// a stored value that is not a bcrypt hash
		return nil, newError(KindPersistence, op, err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:    models.ActivityUserLoggedIn,
		UserID:  u.ID,
		Message: fmt.Sprintf("user %q logged in", u.Username),
	})
	return &models.User{ID: u.ID, Username: u.Username}, nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword compares in constant time.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
