package models

import "time"

// LocalProfileID is the primary key of the single local profile row
const LocalProfileID uint = 1

// Profile limits
const (
	MaxUsernameLength = 50
	MaxBioLength      = 200
	MaxAvatarSize     = 2 * 1024 * 1024
)

// DefaultUsername is shown until the user saves a profile
const DefaultUsername = "Pengguna Nusantara"

// UserProfile is the locally owned profile of the single local user
type UserProfile struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	Bio       string    `gorm:"type:text" json:"bio"`
	AvatarURL string    `gorm:"type:text" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}
