package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-portal/internal/api/dto"
	"github.com/spec-kit/complaint-portal/internal/auth"
	"github.com/spec-kit/complaint-portal/internal/service"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

// AdminHandler serves the administrator dashboard endpoints. Every route is
// behind the admin capability gate.
type AdminHandler struct {
	complaints *service.ComplaintService
	users      *service.UserService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaintService *service.ComplaintService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{complaints: complaintService, users: userService}
}

// ListUsers GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// ListComplaints GET /api/admin/complaints.
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponses(complaints))
}

// UpdateComplaintStatus PATCH /api/admin/complaints/:id/status.
func (h *AdminHandler) UpdateComplaintStatus(c *fiber.Ctx) error {
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

	complaint, err := h.complaints.UpdateStatusAsAdmin(c.UserContext(), principal.User.ID, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// AssignComplaintDepartment PATCH /api/admin/complaints/:id/department.
func (h *AdminHandler) AssignComplaintDepartment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.AssignDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID <= 0 {
		return apperrors.NewValidationError("invalid department", []apperrors.FieldError{{
			Field:   "departmentId",
			Message: "must be a positive integer",
		}})
	}

	complaint, err := h.complaints.AssignDepartment(c.UserContext(), principal.User.ID, id, req.DepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// UpdateUserRole PATCH /api/admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateRole(c.UserContext(), principal.User.ID, id, req.IsDepartmentHead, req.DepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
