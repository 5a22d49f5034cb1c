//go:build unit

package shop_test

import (
	"testing"

	"navbat/internal/domain/shop"
	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shopArgs struct {
	name    string
	address string
	phone   string
	price   int
}

func validArgs() shopArgs {
	return shopArgs{
		name:    "Chust Barbers",
		address: "12 Amir Temur Avenue",
		phone:   "+998711234567",
		price:   50000,
	}
}

func build(a shopArgs) (*shop.Shop, error) {
	return shop.NewShop(
		a.name, nil, a.address, a.phone, nil, a.price,
		civil.TimeOfDay{Hour: 9}, civil.TimeOfDay{Hour: 21},
		uuid.New(),
	)
}

func TestNewShop(t *testing.T) {
	t.Run("valid shop", func(t *testing.T) {
		s, err := build(validArgs())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.True(t, s.IsActive())
		assert.Equal(t, "Chust Barbers", s.Name())
		assert.Equal(t, civil.TimeOfDay{Hour: 9}, s.OpeningTime())
	})

	t.Run("trims name and address", func(t *testing.T) {
		a := validArgs()
		a.name = "  Chust Barbers  "
		a.address = " 12 Amir Temur Avenue "

		s, err := build(a)
		require.NoError(t, err)
		assert.Equal(t, "Chust Barbers", s.Name())
		assert.Equal(t, "12 Amir Temur Avenue", s.Address())
	})

	tests := []struct {
		name   string
		mutate func(*shopArgs)
		errIs  error
	}{
		{
			name:   "empty name",
			mutate: func(a *shopArgs) { a.name = "  " },
			errIs:  shop.ErrInvalidName,
		},
		{
			name:   "empty address",
			mutate: func(a *shopArgs) { a.address = "" },
			errIs:  shop.ErrInvalidAddress,
		},
		{
			name:   "empty phone",
			mutate: func(a *shopArgs) { a.phone = " " },
			errIs:  shop.ErrInvalidPhone,
		},
		{
			name:   "zero price",
			mutate: func(a *shopArgs) { a.price = 0 },
			errIs:  shop.ErrInvalidPrice,
		},
		{
			name:   "negative price",
			mutate: func(a *shopArgs) { a.price = -100 },
			errIs:  shop.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArgs()
			tt.mutate(&a)

			_, err := build(a)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}
