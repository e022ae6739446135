package dto

import (
	"time"

	"github.com/spec-kit/complaint-portal/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user; credential hashes never leave
// the server.
type UserResponse struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	IsAdmin          bool      `json:"isAdmin"`
	IsDepartmentHead bool      `json:"isDepartmentHead"`
	DepartmentID     *int64    `json:"departmentId"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		FullName:         user.FullName,
		Email:            user.Email,
		IsAdmin:          user.IsAdmin,
		IsDepartmentHead: user.IsDepartmentHead,
		DepartmentID:     user.DepartmentID,
		CreatedAt:        user.CreatedAt,
	}
}
