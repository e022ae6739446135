package dto

import "github.com/spec-kit/complaint-portal/internal/domain"

// UpdateStatusRequest payload for status transitions.
type UpdateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status"`
}

// AssignDepartmentRequest payload for admin department assignment.
type AssignDepartmentRequest struct {
	DepartmentID int64 `json:"departmentId"`
}

// UpdateRoleRequest payload for admin role management. DepartmentID is
// nullable: revoking the head capability clears the department.
type UpdateRoleRequest struct {
	IsDepartmentHead bool   `json:"isDepartmentHead"`
	DepartmentID     *int64 `json:"departmentId"`
}
