package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/events"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

func newComplaintService(complaints *fakeComplaintRepo, departments *fakeDepartmentRepo, dispatcher events.Dispatcher) *ComplaintService {
	return NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  complaints,
		DepartmentRepo: departments,
		Dispatcher:     dispatcher,
	})
}

func headOfDepartment(id, departmentID int64) *domain.User {
	return &domain.User{ID: id, Username: "head", IsDepartmentHead: true, DepartmentID: &departmentID}
}

func assertDomainError(t *testing.T, err error, wantCode string, wantStatus int) *apperrors.DomainError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", wantCode)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != wantCode {
		t.Errorf("expected code %s, got %s", wantCode, domainErr.Code)
	}
	if domainErr.HTTPStatus != wantStatus {
		t.Errorf("expected status %d, got %d", wantStatus, domainErr.HTTPStatus)
	}
	return domainErr
}

func TestCreateComplaintDefaults(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints, newFakeDepartmentRepo(), nil)

	complaint, err := svc.Create(context.Background(), 7, ComplaintCreateInput{
		Type:        domain.ComplaintTypeQuery,
		Description: "Necesito ayuda con mi pago",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if complaint.Status != domain.ComplaintStatusPending {
		t.Errorf("expected status pending, got %s", complaint.Status)
	}
	if complaint.DepartmentID != nil {
		t.Errorf("expected nil department, got %d", *complaint.DepartmentID)
	}
	if complaint.UserID != 7 {
		t.Errorf("expected user 7, got %d", complaint.UserID)
	}
	if complaint.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}
}

func TestCreateComplaintShortDescriptionRejected(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints, newFakeDepartmentRepo(), nil)

	_, err := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeComplaint,
		Description: "too short",
	})
	domainErr := assertDomainError(t, err, "VALIDATION_FAILED", 400)
	if len(domainErr.FieldErrors) != 1 || domainErr.FieldErrors[0].Field != "description" {
		t.Errorf("expected description field error, got %+v", domainErr.FieldErrors)
	}

	if len(complaints.complaints) != 0 {
		t.Error("invalid complaint must never be persisted")
	}
}

func TestCreateComplaintInvalidTypeListsAllFieldErrors(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)

	_, err := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        "RANT",
		Description: "short",
	})
	domainErr := assertDomainError(t, err, "VALIDATION_FAILED", 400)
	if len(domainErr.FieldErrors) != 2 {
		t.Errorf("expected both field errors itemized, got %+v", domainErr.FieldErrors)
	}
}

func TestAdminUpdateStatusAnyValue(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints, newFakeDepartmentRepo(), nil)

	created, err := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeSuggestion,
		Description: "please add more bins downtown",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, status := range []domain.ComplaintStatus{
		domain.ComplaintStatusProcessing,
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusRejected,
		domain.ComplaintStatusPending,
	} {
		updated, err := svc.UpdateStatusAsAdmin(context.Background(), 99, created.ID, status)
		if err != nil {
			t.Fatalf("admin transition to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("expected status %s, got %s", status, updated.Status)
		}
	}
}

func TestAdminUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)
	_, err := svc.UpdateStatusAsAdmin(context.Background(), 1, 1, "archived")
	assertDomainError(t, err, "VALIDATION_FAILED", 400)
}

func TestAdminUpdateStatusMissingComplaint(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)
	_, err := svc.UpdateStatusAsAdmin(context.Background(), 1, 42, domain.ComplaintStatusResolved)
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestAssignDepartmentForcesProcessing(t *testing.T) {
	complaints := newFakeComplaintRepo()
	departments := newFakeDepartmentRepo()
	_ = departments.Create(context.Background(), &domain.Department{Name: "Departamento de Salud"})
	svc := newComplaintService(complaints, departments, nil)

	created, err := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeComplaint,
		Description: "streetlight has been broken for weeks",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.AssignDepartment(context.Background(), 99, created.ID, 1)
	if err != nil {
		t.Fatalf("AssignDepartment failed: %v", err)
	}
	if updated.Status != domain.ComplaintStatusProcessing {
		t.Errorf("expected processing after assignment, got %s", updated.Status)
	}
	if updated.DepartmentID == nil || *updated.DepartmentID != 1 {
		t.Errorf("expected department 1, got %v", updated.DepartmentID)
	}
}

// Re-assignment deliberately reopens finished records: assignment always
// means triage has (re)started.
func TestAssignDepartmentReopensResolvedComplaint(t *testing.T) {
	complaints := newFakeComplaintRepo()
	departments := newFakeDepartmentRepo()
	_ = departments.Create(context.Background(), &domain.Department{Name: "Departamento de Vialidad"})
	svc := newComplaintService(complaints, departments, nil)

	created, err := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeComplaint,
		Description: "pothole on main street near the school",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.UpdateStatusAsAdmin(context.Background(), 99, created.ID, domain.ComplaintStatusResolved); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	updated, err := svc.AssignDepartment(context.Background(), 99, created.ID, 1)
	if err != nil {
		t.Fatalf("AssignDepartment failed: %v", err)
	}
	if updated.Status != domain.ComplaintStatusProcessing {
		t.Errorf("assignment must force processing even on resolved records, got %s", updated.Status)
	}
}

func TestAssignDepartmentUnknownDepartment(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)
	_, err := svc.AssignDepartment(context.Background(), 1, 1, 12)
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestHeadUpdateStatusOwnDepartment(t *testing.T) {
	complaints := newFakeComplaintRepo()
	departments := newFakeDepartmentRepo()
	_ = departments.Create(context.Background(), &domain.Department{Name: "Departamento de Salud"})
	svc := newComplaintService(complaints, departments, nil)

	created, _ := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeQuery,
		Description: "clinic opening hours are unclear",
	})
	if _, err := svc.AssignDepartment(context.Background(), 99, created.ID, 1); err != nil {
		t.Fatalf("AssignDepartment failed: %v", err)
	}

	updated, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(5, 1), created.ID, domain.ComplaintStatusResolved)
	if err != nil {
		t.Fatalf("own-department transition failed: %v", err)
	}
	if updated.Status != domain.ComplaintStatusResolved {
		t.Errorf("expected resolved, got %s", updated.Status)
	}
}

func TestHeadUpdateStatusForeignDepartmentForbidden(t *testing.T) {
	complaints := newFakeComplaintRepo()
	departments := newFakeDepartmentRepo()
	_ = departments.Create(context.Background(), &domain.Department{Name: "Departamento de Salud"})
	svc := newComplaintService(complaints, departments, nil)

	created, _ := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeComplaint,
		Description: "garbage collection skipped our block",
	})
	if _, err := svc.AssignDepartment(context.Background(), 99, created.ID, 1); err != nil {
		t.Fatalf("AssignDepartment failed: %v", err)
	}

	_, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(5, 2), created.ID, domain.ComplaintStatusResolved)
	assertDomainError(t, err, "FORBIDDEN", 403)

	// Never a silent no-op: the record is untouched.
	stored, _ := complaints.GetByID(context.Background(), created.ID)
	if stored.Status != domain.ComplaintStatusProcessing {
		t.Errorf("foreign-department attempt must not mutate, got %s", stored.Status)
	}
}

func TestHeadUpdateStatusUnassignedComplaintForbidden(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints, newFakeDepartmentRepo(), nil)

	created, _ := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeComplaint,
		Description: "noise complaints about the plaza",
	})

	_, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(5, 1), created.ID, domain.ComplaintStatusProcessing)
	assertDomainError(t, err, "FORBIDDEN", 403)
}

func TestHeadCannotSetPending(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)
	_, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(5, 1), 1, domain.ComplaintStatusPending)
	assertDomainError(t, err, "VALIDATION_FAILED", 400)
}

func TestHeadWithoutDepartmentRejected(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)
	head := &domain.User{ID: 5, IsDepartmentHead: true}

	if _, err := svc.ListForDepartment(context.Background(), head); err == nil {
		t.Error("expected error listing without a department")
	}
	_, err := svc.UpdateStatusAsHead(context.Background(), head, 1, domain.ComplaintStatusProcessing)
	assertDomainError(t, err, "VALIDATION_FAILED", 400)
}

func TestHeadUpdateStatusMissingComplaint(t *testing.T) {
	svc := newComplaintService(newFakeComplaintRepo(), newFakeDepartmentRepo(), nil)
	_, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(5, 1), 42, domain.ComplaintStatusResolved)
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestComplaintEventsPublished(t *testing.T) {
	dispatcher := &captureDispatcher{}
	departments := newFakeDepartmentRepo()
	_ = departments.Create(context.Background(), &domain.Department{Name: "Departamento de Salud"})
	svc := newComplaintService(newFakeComplaintRepo(), departments, dispatcher)

	created, err := svc.Create(context.Background(), 1, ComplaintCreateInput{
		Type:        domain.ComplaintTypeQuery,
		Description: "where do I renew my permit",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.AssignDepartment(context.Background(), 99, created.ID, 1); err != nil {
		t.Fatalf("AssignDepartment failed: %v", err)
	}
	if _, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(5, 1), created.ID, domain.ComplaintStatusResolved); err != nil {
		t.Fatalf("UpdateStatusAsHead failed: %v", err)
	}

	if dispatcher.published(events.EventComplaintCreated) != 1 {
		t.Error("expected complaint_created event")
	}
	if dispatcher.published(events.EventComplaintAssigned) != 1 {
		t.Error("expected complaint_assigned event")
	}
	if dispatcher.published(events.EventComplaintStatusChanged) != 1 {
		t.Error("expected complaint_status_changed event")
	}
}

// Full lifecycle: citizen files, admin assigns, owning head resolves, a
// foreign head is turned away.
func TestComplaintLifecycleScenario(t *testing.T) {
	complaints := newFakeComplaintRepo()
	departments := newFakeDepartmentRepo()
	for i := 0; i < 4; i++ {
		_ = departments.Create(context.Background(), &domain.Department{Name: fmt.Sprintf("dept-%d", i+1)})
	}
	svc := newComplaintService(complaints, departments, nil)

	created, err := svc.Create(context.Background(), 10, ComplaintCreateInput{
		Type:        domain.ComplaintTypeQuery,
		Description: "Necesito ayuda con mi pago",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != domain.ComplaintStatusPending || created.DepartmentID != nil {
		t.Fatalf("unexpected creation state: %+v", created)
	}

	assigned, err := svc.AssignDepartment(context.Background(), 99, created.ID, 3)
	if err != nil {
		t.Fatalf("AssignDepartment failed: %v", err)
	}
	if assigned.Status != domain.ComplaintStatusProcessing {
		t.Fatalf("expected processing, got %s", assigned.Status)
	}

	resolved, err := svc.UpdateStatusAsHead(context.Background(), headOfDepartment(20, 3), created.ID, domain.ComplaintStatusResolved)
	if err != nil {
		t.Fatalf("head of department 3 should succeed: %v", err)
	}
	if resolved.Status != domain.ComplaintStatusResolved {
		t.Fatalf("expected resolved, got %s", resolved.Status)
	}

	_, err = svc.UpdateStatusAsHead(context.Background(), headOfDepartment(21, 4), created.ID, domain.ComplaintStatusResolved)
	assertDomainError(t, err, "FORBIDDEN", 403)
}
