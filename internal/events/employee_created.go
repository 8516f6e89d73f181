package events

import "time"

const EmployeeCreatedTopic = "absensi.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	NIP        string    `json:"nip"`
	OccurredAt time.Time `json:"occurred_at"`
}
