package domain

import "time"

// ComplaintType enumerates the kinds of submissions citizens can file.
// Immutable after creation.
type ComplaintType string

const (
	ComplaintTypeComplaint  ComplaintType = "COMPLAINT"
	ComplaintTypeQuery      ComplaintType = "QUERY"
	ComplaintTypeSuggestion ComplaintType = "SUGGESTION"
)

// Valid reports whether t is one of the known complaint types.
func (t ComplaintType) Valid() bool {
	switch t {
	case ComplaintTypeComplaint, ComplaintTypeQuery, ComplaintTypeSuggestion:
		return true
	}
	return false
}

// ComplaintStatus enumerates lifecycle states for a complaint.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusProcessing ComplaintStatus = "processing"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusProcessing, ComplaintStatusResolved, ComplaintStatusRejected:
		return true
	}
	return false
}

// AssignableByHead reports whether a department head may move a complaint
// into status s. Heads can never move a complaint back to pending.
func (s ComplaintStatus) AssignableByHead() bool {
	switch s {
	case ComplaintStatusProcessing, ComplaintStatusResolved, ComplaintStatusRejected:
		return true
	case ComplaintStatusPending:
		return false
	}
	return false
}

// Complaint is the aggregate for citizen submissions. DepartmentID is nil
// until an admin assigns the record for triage.
type Complaint struct {
	ID           int64
	UserID       int64
	Type         ComplaintType
	Description  string
	Status       ComplaintStatus
	DepartmentID *int64
	CreatedAt    time.Time
}
