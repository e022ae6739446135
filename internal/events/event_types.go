package events

import (
	"time"

	"github.com/spec-kit/complaint-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintAssigned      EventType = "complaint_assigned"
	EventUserRoleChanged        EventType = "user_role_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	ComplaintID int64                `json:"complaint_id"`
	Type        domain.ComplaintType `json:"type"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	ComplaintID int64                  `json:"complaint_id"`
	OldStatus   domain.ComplaintStatus `json:"old_status"`
	NewStatus   domain.ComplaintStatus `json:"new_status"`
}

// ComplaintAssignedPayload payload.
type ComplaintAssignedPayload struct {
	ComplaintID  int64 `json:"complaint_id"`
	DepartmentID int64 `json:"department_id"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID           int64  `json:"user_id"`
	IsDepartmentHead bool   `json:"is_department_head"`
	DepartmentID     *int64 `json:"department_id,omitempty"`
}
