package services

import (
	"context"
	"strings"

	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/models"
	"github.com/budgetbot/backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

// Register creates the user profile. The phone number must be unique: it is
// how webhook messages are mapped back to an owner.
func (s *userService) Register(ctx context.Context, uid, email, name, phone string) error {
	log := logger.FromContext(ctx)

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValidationError("phone is required")
	}

	if _, err := s.Store.GetUserByPhone(ctx, phone); err == nil {
		return errs.NewAlreadyExistsError("phone number is already registered")
	}

	user := &models.User{
		UID:   uid,
		Email: email,
		Name:  name,
		Phone: phone,
	}

	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	log.Info("user registered", "name", name)
	return nil
}

func (s *userService) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}

// GetByPhone resolves a webhook sender to a registered user.
func (s *userService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.Store.GetUserByPhone(ctx, phone)
}
