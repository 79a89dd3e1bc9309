package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string    `gorm:"column:name;type:varchar(255);not null"`
	Email string    `gorm:"column:email;type:varchar(255);uniqueIndex:uq_employees_email;not null"`

	IsActive    bool `gorm:"column:is_active;not null;default:true"`
	IsActivated bool `gorm:"column:is_activated;not null;default:false"`

	// Set only once the employee activates with a password.
	PasswordHash *string `gorm:"column:password_hash;type:text"`

	// Single-use onboarding credential, cleared on activation.
	ActivationToken *string `gorm:"column:activation_token;type:varchar(255);uniqueIndex:uq_employees_activation_token"`

	// Digest of the currently honored access token. Null means no live
	// session; at most one token verifies against it at a time.
	SessionFingerprint *string `gorm:"column:session_fingerprint;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
