package response

import (
	"time"

	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	var out UserResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromAuthResult(r *commands.AuthResult) (*AuthResponse, error) {
	u, err := FromUserView(r.User)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: r.Token, User: u}, nil
}
