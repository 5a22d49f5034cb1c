package auth

import (
	"errors"

	"navbat/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
)

type Credentials struct {
	phone    user.Phone
	password user.Password
}

func NewCredentials(phoneStr, passwordStr string) (Credentials, error) {
	phone, err := user.NewPhone(phoneStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		phone:    phone,
		password: password,
	}, nil
}

func (c Credentials) Phone() user.Phone {
	return c.phone
}

func (c Credentials) Password() user.Password {
	return c.password
}
