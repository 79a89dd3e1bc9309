package app

import (
	"go-timetrack/internal/employee"
	"go-timetrack/internal/project"
	"go-timetrack/internal/screenshot"
	"go-timetrack/internal/task"
	"go-timetrack/internal/timeentry"

	"gorm.io/gorm"
)

// migrate brings the schema up. Entities go through AutoMigrate; the outbox
// table is plain SQL because its repository is raw SQL end to end.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&project.Project{},
		&task.Task{},
		&timeentry.TimeEntry{},
		&screenshot.Screenshot{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE TABLE IF NOT EXISTS outbox_events (
			id UUID PRIMARY KEY,
			request_id TEXT,
			aggregate_type TEXT NOT NULL,
			aggregate_id UUID NOT NULL,
			event_type TEXT NOT NULL,
			topic TEXT NOT NULL,
			payload JSONB NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			retry_count INT NOT NULL DEFAULT 0,
			last_error TEXT,
			next_retry_at TIMESTAMPTZ,
			sent_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`).Error
}
