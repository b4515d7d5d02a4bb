package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// UserService covers registration and the admin operations on accounts.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates an account with a hashed password and the default role.
// Returns ErrEmailTaken when the address is already registered.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	log := logger.WithCtx(ctx)

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user: find by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("user: hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hash,
		Active:   true,
		Roles:    models.RoleUser,
	}
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("user: save: %w", err)
	}

	log.Info("user: registered", "email", email)
	return user, nil
}

// Login checks credentials and returns a signed JWT.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", fmt.Errorf("user: find by email: %w", err)
	}
	if user == nil || !user.Active || !auth.CheckPassword(user.Password, password) {
		return "", ErrUserNotFound
	}
	return auth.GenerateToken(user.ID, user.Email, user.Roles)
}

// ByEmail resolves a user or returns ErrUserNotFound.
func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user: find by email: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.All()
}

// BanUser flips the account's Active flag. The toggle goes both ways under
// this one name: banning a banned account reactivates it. The admin screen
// depends on that round trip.
func (s *UserService) BanUser(ctx context.Context, id uint) error {
	log := logger.WithCtx(ctx)

	user, err := s.users.FindByID(id)
	if err != nil {
		return fmt.Errorf("user: find by id: %w", err)
	}
	if user == nil {
		log.Error("user: ban target not found", "user_id", id)
		return ErrUserNotFound
	}

	if user.Active {
		user.Active = false
		log.Info("user: banned", "user_id", user.ID, "email", user.Email)
	} else {
		user.Active = true
		log.Info("user: unbanned", "user_id", user.ID, "email", user.Email)
	}
	if err := s.users.Save(user); err != nil {
		return fmt.Errorf("user: save: %w", err)
	}
	return nil
}

// ChangeRoles replaces the user's role set with the valid subset of the
// submitted names.
func (s *UserService) ChangeRoles(ctx context.Context, id uint, roles []string) error {
	log := logger.WithCtx(ctx)

	user, err := s.users.FindByID(id)
	if err != nil {
		return fmt.Errorf("user: find by id: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.SetRoles(roles)
	if err := s.users.Save(user); err != nil {
		return fmt.Errorf("user: save roles: %w", err)
	}
	log.Info("user: roles changed", "user_id", user.ID, "roles", user.Roles)
	return nil
}
