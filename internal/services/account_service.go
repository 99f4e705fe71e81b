package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rathore23/auth-microservice/domain"
)

// AccountServiceImpl implements domain.AccountService
type AccountServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	authz       domain.Authorizer
}

// NewAccountService creates the self-service account service
func NewAccountService(userRepo domain.UserRepository, passwordSvc domain.PasswordService, authz domain.Authorizer) domain.AccountService {
	return &AccountServiceImpl{userRepo: userRepo, passwordSvc: passwordSvc, authz: authz}
}

// Get implements domain.AccountService
func (s *AccountServiceImpl) Get(ctx context.Context, caller *domain.Caller, id uint) (*domain.User, error) {
	return s.load(ctx, caller, domain.ActionRetrieve, id)
}

// Update implements domain.AccountService
func (s *AccountServiceImpl) Update(ctx context.Context, caller *domain.Caller, id uint, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.load(ctx, caller, domain.ActionPartialUpdate, id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Phone != nil && *upd.Phone != user.Phone {
		if _, err := s.userRepo.FindByPhone(ctx, *upd.Phone); err == nil {
			return nil, domain.NewValidationError("phone", "A user with that phone already exists.")
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		user.Phone = *upd.Phone
	}
	if upd.Password != nil {
		hashed, err := s.passwordSvc.Hash(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.NewValidationError("phone", "A user with that phone already exists.")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Deactivate implements domain.AccountService. Accounts are never hard-deleted.
func (s *AccountServiceImpl) Deactivate(ctx context.Context, caller *domain.Caller, id uint) error {
	user, err := s.load(ctx, caller, domain.ActionDestroy, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// load authorizes before touching the store so other accounts' existence is not disclosed
func (s *AccountServiceImpl) load(ctx context.Context, caller *domain.Caller, action domain.Action, id uint) (*domain.User, error) {
	if err := s.authz.AuthorizeAccount(caller, action, id); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, err
	}
	return user, nil
}
