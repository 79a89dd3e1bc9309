package timeentry

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one work session. An entry with a nil EndTime is the
// employee's active session; the partial unique index keeps it to at most
// one per employee even under concurrent clock-ins.
type TimeEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index:idx_time_entries_employee_id;uniqueIndex:uq_time_entries_active_employee,where:end_time IS NULL"`
	TaskID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_time_entries_task_id"`
	StartTime  time.Time  `gorm:"not null"`
	EndTime    *time.Time
	IPAddress  *string `gorm:"size:45"`
	MACAddress *string `gorm:"size:17"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// Active reports whether the session is still open.
func (e *TimeEntry) Active() bool {
	return e.EndTime == nil
}

// Duration returns the elapsed session length, or zero while still open.
func (e *TimeEntry) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}
