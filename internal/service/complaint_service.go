package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/events"
	"github.com/spec-kit/complaint-portal/internal/repository"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

const minDescriptionLength = 10

// ComplaintService coordinates the complaint lifecycle: creation defaults,
// admin triage, and department-scoped transitions by department heads.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
}

// ComplaintCreateInput describes the citizen submission payload.
type ComplaintCreateInput struct {
	Type        domain.ComplaintType
	Description string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create files a new complaint for the given user. Status is always pending
// and no department is assigned, regardless of submitted fields.
func (s *ComplaintService) Create(ctx context.Context, userID int64, input ComplaintCreateInput) (*domain.Complaint, error) {
	var fields []apperrors.FieldError
	if !input.Type.Valid() {
		fields = append(fields, apperrors.FieldError{
			Field:   "type",
			Message: "must be one of COMPLAINT, QUERY, SUGGESTION",
		})
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.Description)) < minDescriptionLength {
		fields = append(fields, apperrors.FieldError{
			Field:   "description",
			Message: "must be at least 10 characters",
		})
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("invalid complaint", fields)
	}

	complaint := &domain.Complaint{
		UserID:       userID,
		Type:         input.Type,
		Description:  strings.TrimSpace(input.Description),
		Status:       domain.ComplaintStatusPending,
		DepartmentID: nil,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventComplaintCreated,
		ActorID: userID,
		Payload: events.ComplaintCreatedPayload{
			ComplaintID: complaint.ID,
			Type:        complaint.Type,
		},
	})
	return complaint, nil
}

// ListForUser returns the caller's own complaints.
func (s *ComplaintService) ListForUser(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// ListAll returns every complaint; admin dashboards only.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// ListForDepartment returns complaints assigned to the head's department.
func (s *ComplaintService) ListForDepartment(ctx context.Context, head *domain.User) ([]domain.Complaint, error) {
	if head.DepartmentID == nil {
		return nil, apperrors.NewValidationError("user not assigned to a department", nil)
	}
	complaints, err := s.complaints.ListByDepartment(ctx, *head.DepartmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// UpdateStatusAsAdmin sets any of the four statuses on a complaint.
func (s *ComplaintService) UpdateStatusAsAdmin(ctx context.Context, actorID, complaintID int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", []apperrors.FieldError{{
			Field:   "status",
			Message: "must be one of pending, processing, resolved, rejected",
		}})
	}

	current, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, notFoundOrInternal(err, "complaint")
	}

	updated, err := s.complaints.UpdateStatus(ctx, complaintID, status)
	if err != nil {
		return nil, notFoundOrInternal(err, "complaint")
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventComplaintStatusChanged,
		ActorID: actorID,
		Payload: events.ComplaintStatusChangedPayload{
			ComplaintID: updated.ID,
			OldStatus:   current.Status,
			NewStatus:   updated.Status,
		},
	})
	return updated, nil
}

// AssignDepartment assigns a complaint to a department for triage. The
// status is forced to processing unconditionally, even on records that were
// already resolved or rejected: assignment means triage has (re)started.
func (s *ComplaintService) AssignDepartment(ctx context.Context, actorID, complaintID, departmentID int64) (*domain.Complaint, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, notFoundOrInternal(err, "department")
	}

	updated, err := s.complaints.AssignDepartment(ctx, complaintID, departmentID, domain.ComplaintStatusProcessing)
	if err != nil {
		return nil, notFoundOrInternal(err, "complaint")
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventComplaintAssigned,
		ActorID: actorID,
		Payload: events.ComplaintAssignedPayload{
			ComplaintID:  updated.ID,
			DepartmentID: departmentID,
		},
	})
	return updated, nil
}

// UpdateStatusAsHead transitions a complaint within the head's own
// department. Heads may only move records to processing, resolved or
// rejected, never back to pending, and never across departments.
func (s *ComplaintService) UpdateStatusAsHead(ctx context.Context, head *domain.User, complaintID int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if head.DepartmentID == nil {
		return nil, apperrors.NewValidationError("user not assigned to a department", nil)
	}
	if !status.AssignableByHead() {
		return nil, apperrors.NewValidationError("invalid status", []apperrors.FieldError{{
			Field:   "status",
			Message: "must be one of processing, resolved, rejected",
		}})
	}

	current, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, notFoundOrInternal(err, "complaint")
	}
	if current.DepartmentID == nil || *current.DepartmentID != *head.DepartmentID {
		return nil, apperrors.NewForbidden("complaint does not belong to your department")
	}

	updated, err := s.complaints.UpdateStatus(ctx, complaintID, status)
	if err != nil {
		return nil, notFoundOrInternal(err, "complaint")
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventComplaintStatusChanged,
		ActorID: head.ID,
		Payload: events.ComplaintStatusChangedPayload{
			ComplaintID: updated.ID,
			OldStatus:   current.Status,
			NewStatus:   updated.Status,
		},
	})
	return updated, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func notFoundOrInternal(err error, resource string) error {
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound(resource)
	}
	return apperrors.MapError(err)
}
