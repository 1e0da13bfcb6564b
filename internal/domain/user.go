package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis dos usuários da aplicação
const (
	RoleAdmin     = 1
	RoleModerator = 2
	RoleDriver    = 3
)

type User struct {
	ID             int        `json:"id"`
	DisplayName    string     `json:"display_name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"password,omitempty"`
	Active         bool       `json:"active"`
	RoleID         int        `json:"role_id"`
	AvatarURL      *string    `json:"avatar_url"`
	Points         int        `json:"points"`
	InfluenceLevel string     `json:"influence_level"`
	TotalRefuels   int        `json:"total_refuels"`
	Deleted        bool       `json:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID          int     `json:"id"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Active      *bool   `json:"active"`
	RoleID      *int    `json:"role_id"`
	AvatarURL   *string `json:"avatar_url"`
	Deleted     *bool   `json:"deleted"`
}

type Claims struct {
	UserID          int
	UserDisplayName string
	UserEmail       string
	UserActive      bool
	UserRoleID      int
	jwt.RegisteredClaims
}
