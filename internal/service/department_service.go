package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/repository"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

// SeedDepartments is the fixed municipal department roster, inserted once
// at startup when the registry is empty.
var SeedDepartments = []domain.Department{
	{Name: "Departamento de Vialidad", Description: "Gestión de infraestructura vial"},
	{Name: "Departamento de Educación", Description: "Gestión educativa municipal"},
	{Name: "Departamento de Obras Públicas", Description: "Gestión de obras municipales"},
	{Name: "Departamento de Seguridad", Description: "Gestión de seguridad ciudadana"},
	{Name: "Departamento de Salud", Description: "Gestión de salud municipal"},
	{Name: "Departamento de Desarrollo Social", Description: "Gestión de programas sociales"},
}

// DepartmentService exposes the department registry.
type DepartmentService struct {
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, logger: logger}
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// EnsureSeedDepartments inserts the seed roster when the table is empty.
// The check is "table empty", not "row exists by name": a run against an
// already-seeded registry inserts nothing, so restarts are safe. A
// partially emptied table is never re-seeded, which is acceptable because
// no deletion path exists.
func (s *DepartmentService) EnsureSeedDepartments(ctx context.Context) error {
	count, err := s.departments.Count(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return nil
	}

	for i := range SeedDepartments {
		dept := SeedDepartments[i]
		if err := s.departments.Create(ctx, &dept); err != nil {
			return apperrors.MapError(err)
		}
	}
	s.logger.Info("seeded departments", zap.Int("count", len(SeedDepartments)))
	return nil
}
