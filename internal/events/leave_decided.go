package events

import "time"

const LeaveDecidedTopic = "absensi.leave.decision.v1"

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
