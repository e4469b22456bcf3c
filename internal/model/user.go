package model

import "time"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// swagger:model Role
type Role struct {
	BaseModel
	Name string `gorm:"size:50;unique;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// swagger:model User
type User struct {
	BaseModel
	Username  string     `gorm:"size:100;unique;not null" json:"username"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	FullName  string     `gorm:"size:150" json:"fullName"`
	Phone     string     `gorm:"size:20" json:"phone"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Gender    string     `gorm:"size:10" json:"gender"`
	AvatarURL string     `gorm:"size:255" json:"avatarUrl"`
	Locked    bool       `gorm:"default:false" json:"locked"`
	Roles     []Role     `gorm:"many2many:user_roles" json:"roles"`

	// Reset-password flow. Only the hash of the outstanding token is kept.
	ResetTokenHash      string     `gorm:"size:64" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
