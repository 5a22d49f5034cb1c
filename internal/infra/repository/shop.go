package repository

import (
	"context"

	"navbat/internal/domain/shop"
	"navbat/internal/infra"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/pgconv"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createShopSQL = `
INSERT INTO shops (id, name, image, address, phone, description, price, opening_time, closing_time, owner_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

// COALESCE keeps columns untouched when the patch leaves a field nil.
const updateShopSQL = `
UPDATE shops
SET name         = COALESCE($2, name),
    image        = COALESCE($3, image),
    address      = COALESCE($4, address),
    phone        = COALESCE($5, phone),
    description  = COALESCE($6, description),
    price        = COALESCE($7, price),
    opening_time = COALESCE($8, opening_time),
    closing_time = COALESCE($9, closing_time),
    updated_at   = now()
WHERE id = $1`

const deactivateShopSQL = `
UPDATE shops
SET is_active = false, updated_at = now()
WHERE id = $1`

const createStaffMemberSQL = `
INSERT INTO staff_members (id, shop_id, name, is_active)
VALUES ($1, $2, $3, $4)`

type ShopRepository struct{}

func NewShopRepository() *ShopRepository {
	return &ShopRepository{}
}

func (r *ShopRepository) Create(ctx context.Context, tx db.DBTX, s *shop.Shop) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createShopSQL,
		s.ID(),
		s.Name(),
		pgconv.StringPtrToPgtype(s.Image()),
		s.Address(),
		s.Phone(),
		pgconv.StringPtrToPgtype(s.Description()),
		s.Price(),
		pgconv.TimeOfDayToPgtype(s.OpeningTime()),
		pgconv.TimeOfDayToPgtype(s.ClosingTime()),
		s.OwnerID(),
		s.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create shop", err, infra.KindFromPgError(err))
	}
	return id, nil
}

func (r *ShopRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, patch shared.ShopPatch) error {
	var price pgtype.Int4
	if patch.Price != nil {
		price = pgtype.Int4{Int32: int32(*patch.Price), Valid: true}
	}
	var opening, closing pgtype.Time
	if patch.OpeningTime != nil {
		opening = pgconv.TimeOfDayToPgtype(*patch.OpeningTime)
	}
	if patch.ClosingTime != nil {
		closing = pgconv.TimeOfDayToPgtype(*patch.ClosingTime)
	}

	tag, err := tx.Exec(ctx, updateShopSQL,
		id,
		pgconv.StringPtrToPgtype(patch.Name),
		pgconv.StringPtrToPgtype(patch.Image),
		pgconv.StringPtrToPgtype(patch.Address),
		pgconv.StringPtrToPgtype(patch.Phone),
		pgconv.StringPtrToPgtype(patch.Description),
		price,
		opening,
		closing,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update shop", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("shop not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ShopRepository) Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deactivateShopSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate shop", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("shop not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ShopRepository) CreateStaffMember(ctx context.Context, tx db.DBTX, m shop.StaffMember) error {
	_, err := tx.Exec(ctx, createStaffMemberSQL, m.ID, m.ShopID, m.Name, m.IsActive)
	if err != nil {
		return infra.WrapRepoErr("failed to create staff member", err, infra.KindFromPgError(err))
	}
	return nil
}
