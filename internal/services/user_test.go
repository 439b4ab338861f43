package services

import (
	"context"
	"errors"
	"testing"

	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/models"
	"github.com/budgetbot/backend/pkg/helpers"
)

type stubUserStore struct {
	user            *models.User
	byPhone         *models.User
	createUserCalls int
	err             error
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.user = user
	s.createUserCalls++
	return s.err
}

func (s *stubUserStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	if s.user == nil {
		return nil, errs.NewNotFoundError("user not found")
	}
	return s.user, nil
}

func (s *stubUserStore) GetUserByPhone(_ context.Context, _ string) (*models.User, error) {
	if s.byPhone == nil {
		return nil, errs.NewNotFoundError("no user registered with this phone number")
	}
	return s.byPhone, nil
}

func TestUserServiceRegister(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store)

	err := svc.Register(helpers.TestCtx(), "uid-123", "user@example.com", "Jane Doe", "+15550001111")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}
	if store.user == nil || store.user.UID != "uid-123" || store.user.Phone != "+15550001111" {
		t.Fatalf("store received unexpected user: %+v", store.user)
	}
}

func TestUserServiceRegisterRequiresPhone(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store)

	err := svc.Register(helpers.TestCtx(), "uid-123", "user@example.com", "Jane Doe", "   ")
	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if store.createUserCalls != 0 {
		t.Fatalf("CreateUser should not be called")
	}
}

func TestUserServiceRegisterDuplicatePhone(t *testing.T) {
	store := &stubUserStore{byPhone: &models.User{UID: "other", Phone: "+15550001111"}}
	svc := NewUserService(store)

	err := svc.Register(helpers.TestCtx(), "uid-123", "user@example.com", "Jane Doe", "+15550001111")
	var existsErr *errs.AlreadyExistsError
	if !errors.As(err, &existsErr) {
		t.Fatalf("expected AlreadyExistsError, got %T", err)
	}
	if store.createUserCalls != 0 {
		t.Fatalf("CreateUser should not be called for a duplicate phone")
	}
}

func TestUserServiceRegisterStoreError(t *testing.T) {
	store := &stubUserStore{err: errors.New("store failure")}
	svc := NewUserService(store)

	err := svc.Register(helpers.TestCtx(), "uid-456", "user2@example.com", "John Smith", "+15550002222")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}
}
