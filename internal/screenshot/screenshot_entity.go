package screenshot

import (
	"time"

	"github.com/google/uuid"
)

// Screenshot is metadata for one captured image. The blob itself lives in
// object storage under FileName; FileURL is the public address served back
// to clients.
type Screenshot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TimeEntryID uuid.UUID `gorm:"type:uuid;not null;index:idx_screenshots_time_entry_id"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_screenshots_employee_id"`
	FileName    string    `gorm:"size:512;not null"`
	FileURL     string    `gorm:"size:1024;not null"`
	ContentType string    `gorm:"size:100;not null"`
	SizeBytes   int64     `gorm:"not null"`
	Permission  bool      `gorm:"not null;default:true"`
	IPAddress   *string   `gorm:"size:45"`
	MACAddress  *string   `gorm:"size:17"`
	CapturedAt  time.Time `gorm:"not null;index:idx_screenshots_captured_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Screenshot) TableName() string {
	return "screenshots"
}
