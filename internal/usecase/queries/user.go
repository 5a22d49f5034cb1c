package queries

import (
	"context"

	"github.com/google/uuid"

	"navbat/internal/domain/user"
	"navbat/internal/infra"
	"navbat/internal/pkg/errs"
)

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
	ListUsers(ctx context.Context, roleFilter *user.Role) ([]UserListItem, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByPhone also returns the password hash for credential checks.
	FindByPhone(ctx context.Context, phone string) (*AuthorizedUserView, string, error)
	List(ctx context.Context, roleFilter *user.Role) ([]UserListItem, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	return view, nil
}

func (q *userQueriesImpl) ListUsers(ctx context.Context, roleFilter *user.Role) ([]UserListItem, error) {
	return q.readStore.List(ctx, roleFilter)
}
