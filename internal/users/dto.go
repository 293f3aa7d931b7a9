package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
)

// UserDTO is the public shape of a user account. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        *string         `json:"phone,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Role         enums.UserRole  `json:"role"`
	Avatar       *string         `json:"avatar,omitempty"`
	ReferralCode *string         `json:"referral_code,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	Commission   decimal.Decimal `json:"commission"`
	LastLoginAt  *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromModel converts a stored user into its public DTO.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Address:      user.Address,
		Role:         user.Role,
		Avatar:       user.Avatar,
		ReferralCode: user.ReferralCode,
		Balance:      user.Balance,
		Commission:   user.Commission,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}
