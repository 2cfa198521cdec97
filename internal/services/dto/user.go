package dto

import (
	"time"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
)

// UserResponse is the public view of an account. Empty optional fields
// are dropped from the JSON output.
type UserResponse struct {
	ID              uint            `json:"id"`
	RoleID          *uint           `json:"role_id,omitempty"`
	RoleName        models.RoleName `json:"role_name,omitempty"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	IsActive        bool            `json:"is_active"`
	IsVerified      bool            `json:"is_verified"`
	CreatedAt       time.Time       `json:"created_at"`
	LocationAddress string          `json:"location_address,omitempty"`
	LocationCity    string          `json:"location_city,omitempty"`
	AvatarURL       string          `json:"avatar_url,omitempty"`
}

// NewUserResponse maps a user record to its public view.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:              user.ID,
		RoleID:          user.RoleID,
		RoleName:        user.RoleName(),
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		IsActive:        user.IsActive,
		IsVerified:      user.IsVerified,
		CreatedAt:       user.CreatedAt,
		LocationAddress: user.LocationAddress,
		LocationCity:    user.LocationCity,
		AvatarURL:       user.AvatarURL,
	}
}

// CreateUserRequest registers a new account. Only name, email and
// password are required.
type CreateUserRequest struct {
	Name            string `json:"name" binding:"required,max=255" validate:"required,max=255"`
	Email           string `json:"email" binding:"required,email" validate:"required,email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password" binding:"required,min=6" validate:"required,min=6"`
	RoleID          *uint  `json:"role_id,omitempty"`
	LocationAddress string `json:"location_address,omitempty"`
	LocationCity    string `json:"location_city,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UpdateUserRequest partially updates an account; nil fields are left
// untouched.
type UpdateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	LocationAddress *string `json:"location_address,omitempty"`
	LocationCity    *string `json:"location_city,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
	IsVerified      *bool   `json:"is_verified,omitempty"`
}

// ChangePasswordRequest rotates a password given the current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" validate:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6" validate:"required,min=6"`
}

// UpdateUserStatusRequest flips the account flags.
type UpdateUserStatusRequest struct {
	IsActive   bool `json:"is_active"`
	IsVerified bool `json:"is_verified"`
}

// UserFilterRequest is the query surface of the filtered user listing.
type UserFilterRequest struct {
	PagedRequest
	SearchTerm  string     `form:"searchTerm" json:"search_term,omitempty"`
	RoleID      *uint      `form:"roleId" json:"role_id,omitempty"`
	IsActive    *bool      `form:"isActive" json:"is_active,omitempty"`
	IsVerified  *bool      `form:"isVerified" json:"is_verified,omitempty"`
	City        string     `form:"locationCity" json:"location_city,omitempty"`
	SortBy      string     `form:"sortBy" json:"sort_by,omitempty" binding:"omitempty,oneof=name email createdAt" validate:"omitempty,oneof=name email createdAt"`
	SortDir     string     `form:"sortDirection" json:"sort_direction,omitempty" binding:"omitempty,oneof=asc desc" validate:"omitempty,oneof=asc desc"`
	CreatedFrom *time.Time `form:"createdFrom" json:"created_from,omitempty" time_format:"2006-01-02"`
	CreatedTo   *time.Time `form:"createdTo" json:"created_to,omitempty" time_format:"2006-01-02"`
}

// ToFilter converts the request into repository criteria.
func (r *UserFilterRequest) ToFilter() repositories.UserFilter {
	r.Normalize()
	return repositories.UserFilter{
		Search:      r.SearchTerm,
		RoleID:      r.RoleID,
		IsActive:    r.IsActive,
		IsVerified:  r.IsVerified,
		City:        r.City,
		CreatedFrom: r.CreatedFrom,
		CreatedTo:   r.CreatedTo,
		SortBy:      r.SortBy,
		SortDesc:    r.SortDir == "desc",
		Page:        r.PageNumber,
		PageSize:    r.PageSize,
	}
}
