package readstore

import (
	"context"

	"navbat/internal/domain/user"
	"navbat/internal/infra"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/pgconv"
	"navbat/internal/usecase/queries"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserByIDSQL = `
SELECT id, phone, name, role, is_active
FROM users
WHERE id = $1`

const findUserByPhoneSQL = `
SELECT id, phone, name, role, is_active, password_hash
FROM users
WHERE phone = $1`

const listUsersSQL = `
SELECT id, phone, name, role, is_active, created_at
FROM users
WHERE $1::text IS NULL OR role = $1
ORDER BY created_at DESC`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID, &view.Phone, &view.Name, &view.Role, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindByPhone(ctx context.Context, phone string) (*queries.AuthorizedUserView, string, error) {
	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, findUserByPhoneSQL, phone).Scan(
		&view.ID, &view.Phone, &view.Name, &view.Role, &view.IsActive, &hash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by phone", err)
	}
	return &view, hash, nil
}

func (r *UserReadStore) List(ctx context.Context, roleFilter *user.Role) ([]queries.UserListItem, error) {
	var role pgtype.Text
	if roleFilter != nil {
		role = pgconv.StringToPgtype(roleFilter.String())
	}

	rows, err := r.db.Query(ctx, listUsersSQL, role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	items := []queries.UserListItem{}
	for rows.Next() {
		var item queries.UserListItem
		if err := rows.Scan(&item.ID, &item.Phone, &item.Name, &item.Role, &item.IsActive, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	return items, nil
}

// FindSnapshot is the command side's user read.
func (r *UserReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var (
		snap shared.UserSnapshot
		role string
	)
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&snap.ID, &snap.Phone, &snap.Name, &role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	parsedRole, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid role in storage", err)
	}
	snap.Role = parsedRole
	return &snap, nil
}
