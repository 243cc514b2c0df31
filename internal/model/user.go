package model

import "time"

// Role discriminates the three kinds of platform identities.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleLearner    Role = "user"
	RoleConsultant Role = "consultant"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleLearner || r == RoleConsultant
}

// User is the single identity record shared by admins, learners and
// consultants. Email is unique across all roles. Role-specific fields
// live in LearnerProfile / ConsultantProfile keyed by the same id.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:50;not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LearnerProfile holds learner-specific attributes.
type LearnerProfile struct {
	UserID          uint   `json:"user_id" gorm:"primaryKey"`
	Phone           string `json:"phone" gorm:"size:15"`
	Address         string `json:"address" gorm:"size:255"`
	AreasOfInterest string `json:"areas_of_interest" gorm:"size:255"` // comma-separated
	DegreeLevel     string `json:"degree_level" gorm:"size:50"`
	Mode            string `json:"mode" gorm:"size:50"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Presence values used as the employment-type proxy in slot generation.
const (
	PresenceOnline  = "Online"
	PresenceOffline = "Offline"
)

// ConsultantProfile holds consultant-specific attributes.
type ConsultantProfile struct {
	UserID   uint   `json:"user_id" gorm:"primaryKey"`
	Phone    string `json:"phone" gorm:"size:15"`
	Address  string `json:"address" gorm:"size:255"`
	Shift    string `json:"shift" gorm:"size:255"`
	Presence string `json:"presence" gorm:"size:255"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
