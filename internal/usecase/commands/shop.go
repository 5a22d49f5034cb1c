package commands

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"navbat/internal/domain/shop"
	"navbat/internal/domain/user"
	reqdto "navbat/internal/handler/dto/request"
	"navbat/internal/infra"
	"navbat/internal/pkg/errs"
	"navbat/internal/usecase/shared"
)

var (
	ErrOwnerNotBarber   = errs.New("shop owner must hold the barber role")
	ErrShopAlreadyOwned = errs.New("owner already has a shop")
)

type ShopCommands interface {
	// CreateShop registers a new shop for an existing barber account.
	// Administrators only.
	CreateShop(ctx context.Context, req reqdto.CreateShopRequest) (uuid.UUID, error)
	UpdateShop(ctx context.Context, shopID uuid.UUID, req reqdto.UpdateShopRequest) error
	// DeactivateShop soft-deletes: the shop drops out of public listings and
	// stops accepting bookings, history stays intact.
	DeactivateShop(ctx context.Context, shopID uuid.UUID) error
	// UpdateOwnShop lets a barber edit the shop they own.
	UpdateOwnShop(ctx context.Context, ownerID uuid.UUID, req reqdto.UpdateShopRequest) error
	AddStaff(ctx context.Context, actorID uuid.UUID, actorRole user.Role, shopID uuid.UUID, req reqdto.AddStaffRequest) (uuid.UUID, error)
}

type shopCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewShopCommands(uow shared.UnitOfWork) ShopCommands {
	return &shopCommandsImpl{uow: uow}
}

func (c *shopCommandsImpl) CreateShop(ctx context.Context, req reqdto.CreateShopRequest) (uuid.UUID, error) {
	data, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var shopID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		owner, err := tx.Reads().UserByID(ctx, data.OwnerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if owner.Role != user.RoleBarber {
			return ErrOwnerNotBarber
		}

		entity, err := shop.NewShop(
			data.Name, data.Image, data.Address, data.Phone,
			data.Description, data.Price,
			data.OpeningTime, data.ClosingTime,
			data.OwnerID,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id, err := tx.Shops().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrShopAlreadyOwned
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		shopID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return shopID, nil
}

func (c *shopCommandsImpl) UpdateShop(ctx context.Context, shopID uuid.UUID, req reqdto.UpdateShopRequest) error {
	patch, err := req.ToPatch()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ShopByID(ctx, shopID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrShopNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Shops().Update(ctx, tx.DB(), shopID, patch); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *shopCommandsImpl) DeactivateShop(ctx context.Context, shopID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ShopByID(ctx, shopID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrShopNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Shops().Deactivate(ctx, tx.DB(), shopID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *shopCommandsImpl) UpdateOwnShop(ctx context.Context, ownerID uuid.UUID, req reqdto.UpdateShopRequest) error {
	patch, err := req.ToPatch()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		own, err := tx.Reads().ShopByOwner(ctx, ownerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrShopNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Shops().Update(ctx, tx.DB(), own.ID, patch); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *shopCommandsImpl) AddStaff(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole user.Role,
	shopID uuid.UUID,
	req reqdto.AddStaffRequest,
) (uuid.UUID, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return uuid.Nil, ErrDomainValidation
	}

	member := shop.StaffMember{
		ID:       uuid.New(),
		ShopID:   shopID,
		Name:     name,
		IsActive: true,
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		shopSnap, err := tx.Reads().ShopByID(ctx, shopID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrShopNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if actorRole != user.RoleAdmin && actorID != shopSnap.OwnerID {
			return ErrForbidden
		}

		if err := tx.Shops().CreateStaffMember(ctx, tx.DB(), member); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return member.ID, nil
}
