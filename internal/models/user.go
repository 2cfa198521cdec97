package models

import "time"

// User is the account record. Session refresh tokens and email
// verification tokens live in separate columns with independent
// expiries so that one workflow can never invalidate the other.
type User struct {
	BaseModel
	RoleID *uint `gorm:"index" json:"role_id"`
	Role   *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:50" json:"phone,omitempty"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	RefreshToken          string     `gorm:"size:255;index" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	VerificationToken          string     `gorm:"size:255;index" json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`

	ResetToken          string     `gorm:"size:255;index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	LocationAddress string `gorm:"size:255" json:"location_address,omitempty"`
	LocationCity    string `gorm:"size:100" json:"location_city,omitempty"`
	AvatarURL       string `gorm:"size:255" json:"avatar_url,omitempty"`

	Blogs []Blog `gorm:"foreignKey:AuthorID" json:"-"`
}

// RoleName returns the user's role name, empty when no role is assigned.
func (u *User) RoleName() RoleName {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// HasValidRefreshToken reports whether the stored refresh token is still
// usable. An expired token is treated exactly like an absent one.
func (u *User) HasValidRefreshToken(now time.Time) bool {
	return u.RefreshToken != "" &&
		u.RefreshTokenExpiresAt != nil &&
		u.RefreshTokenExpiresAt.After(now)
}
