package request

import (
	"navbat/internal/domain/auth"
	"navbat/internal/domain/user"
)

type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterData struct {
	Phone    user.Phone
	Name     user.Name
	Password user.Password
}

func (r *RegisterRequest) ToDomain() (*RegisterData, error) {
	phone, err := user.NewPhone(r.Phone)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(r.Name)
	if err != nil {
		return nil, err
	}
	password, err := user.NewPassword(r.Password)
	if err != nil {
		return nil, err
	}
	return &RegisterData{Phone: phone, Name: name, Password: password}, nil
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (auth.Credentials, error) {
	return auth.NewCredentials(r.Phone, r.Password)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
