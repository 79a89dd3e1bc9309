package events

import "time"

// EmployeeCreatedTopic carries onboarding events consumed by the activation
// email sender.
const EmployeeCreatedTopic = "employee.created"

type EmployeeCreatedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	EmployeeID      string    `json:"employee_id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	ActivationToken string    `json:"activation_token"`
	OccurredAt      time.Time `json:"occurred_at"`
}
