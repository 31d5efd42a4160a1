package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é a conta de coach autenticada. Toda entidade de negócio é
// particionada pelo ID do usuário.
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password"`
	Active       bool       `json:"active"`
	Confirmed    bool       `json:"confirmed"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID      int     `json:"id"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Active  *bool   `json:"active"`
	Deleted *bool   `json:"deleted"`
}

type Claims struct {
	UserID    int
	UserName  string
	UserEmail string
	jwt.RegisteredClaims
}
