package commands

import (
	"context"

	"github.com/google/uuid"

	"navbat/internal/domain/user"
	reqdto "navbat/internal/handler/dto/request"
	"navbat/internal/infra"
	"navbat/internal/pkg/errs"
	"navbat/internal/usecase/shared"
)

var (
	ErrSelfModification = errs.New("administrators cannot modify their own account")
	ErrRoleUnchanged    = errs.New("user already holds this role")
)

// UserCommands are the administrator account operations.
type UserCommands interface {
	// ChangeRole reassigns a user's role. Changing one's own role and
	// no-op changes are rejected.
	ChangeRole(ctx context.Context, adminID, targetID uuid.UUID, req reqdto.ChangeRoleRequest) error
	// ToggleStatus flips the active flag. Deactivated accounts cannot log in
	// or refresh tokens; existing bookings are untouched.
	ToggleStatus(ctx context.Context, adminID, targetID uuid.UUID) (bool, error)
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (c *userCommandsImpl) ChangeRole(ctx context.Context, adminID, targetID uuid.UUID, req reqdto.ChangeRoleRequest) error {
	if adminID == targetID {
		return ErrSelfModification
	}

	newRole, err := user.NewRole(req.Role)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := tx.Reads().UserByID(ctx, targetID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if target.Role == newRole {
			return ErrRoleUnchanged
		}

		if err := tx.Users().UpdateRole(ctx, tx.DB(), targetID, newRole); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *userCommandsImpl) ToggleStatus(ctx context.Context, adminID, targetID uuid.UUID) (bool, error) {
	if adminID == targetID {
		return false, ErrSelfModification
	}

	var nowActive bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := tx.Reads().UserByID(ctx, targetID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		nowActive = !target.IsActive
		if err := tx.Users().SetActive(ctx, tx.DB(), targetID, nowActive); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return nowActive, nil
}
