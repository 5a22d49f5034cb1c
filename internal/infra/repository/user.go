package repository

import (
	"context"

	"navbat/internal/domain/user"
	"navbat/internal/infra"
	"navbat/internal/infra/db"

	"github.com/google/uuid"
)

const createUserSQL = `
INSERT INTO users (id, phone, name, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

const updateUserRoleSQL = `
UPDATE users
SET role = $2, updated_at = now()
WHERE id = $1`

const setUserActiveSQL = `
UPDATE users
SET is_active = $2, updated_at = now()
WHERE id = $1`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Phone().Value(),
		u.Name().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err, infra.KindFromPgError(err))
	}
	return id, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, tx db.DBTX, id uuid.UUID, role user.Role) error {
	tag, err := tx.Exec(ctx, updateUserRoleSQL, id, role.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update user role", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool) error {
	tag, err := tx.Exec(ctx, setUserActiveSQL, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to update user status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
