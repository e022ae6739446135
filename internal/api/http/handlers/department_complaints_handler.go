package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-portal/internal/api/dto"
	"github.com/spec-kit/complaint-portal/internal/auth"
	"github.com/spec-kit/complaint-portal/internal/service"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

// DepartmentComplaintsHandler serves the department-head dashboard. Routes
// are behind the department-head capability gate; the service additionally
// scopes every record access to the head's own department.
type DepartmentComplaintsHandler struct {
	service *service.ComplaintService
}

// NewDepartmentComplaintsHandler constructs handler.
func NewDepartmentComplaintsHandler(complaintService *service.ComplaintService) *DepartmentComplaintsHandler {
	return &DepartmentComplaintsHandler{service: complaintService}
}

// List GET /api/department/complaints.
func (h *DepartmentComplaintsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	complaints, err := h.service.ListForDepartment(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponses(complaints))
}

// UpdateStatus PATCH /api/department/complaints/:id/status.
func (h *DepartmentComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.UpdateStatusAsHead(c.UserContext(), principal.User, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}
