package dto

import (
	"time"

	"github.com/spec-kit/complaint-portal/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Type        domain.ComplaintType `json:"type"`
	Description string               `json:"description"`
}

// ComplaintResponse is the wire representation of a complaint.
type ComplaintResponse struct {
	ID           int64                  `json:"id"`
	UserID       int64                  `json:"userId"`
	Type         domain.ComplaintType   `json:"type"`
	Description  string                 `json:"description"`
	Status       domain.ComplaintStatus `json:"status"`
	DepartmentID *int64                 `json:"departmentId"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// NewComplaintResponse maps a domain complaint to its wire form.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:           complaint.ID,
		UserID:       complaint.UserID,
		Type:         complaint.Type,
		Description:  complaint.Description,
		Status:       complaint.Status,
		DepartmentID: complaint.DepartmentID,
		CreatedAt:    complaint.CreatedAt,
	}
}

// NewComplaintResponses maps a slice of complaints.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}
