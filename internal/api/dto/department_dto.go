package dto

import "github.com/spec-kit/complaint-portal/internal/domain"

// DepartmentResponse is the wire representation of a department.
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewDepartmentResponses maps a slice of departments.
func NewDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	items := make([]DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		items = append(items, DepartmentResponse{
			ID:          dept.ID,
			Name:        dept.Name,
			Description: dept.Description,
		})
	}
	return items
}
