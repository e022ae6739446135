package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestSeedDepartmentsOnEmptyRegistry(t *testing.T) {
	departments := newFakeDepartmentRepo()
	svc := NewDepartmentService(departments, zap.NewNop())

	if err := svc.EnsureSeedDepartments(context.Background()); err != nil {
		t.Fatalf("EnsureSeedDepartments failed: %v", err)
	}

	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != len(SeedDepartments) {
		t.Fatalf("expected %d departments, got %d", len(SeedDepartments), len(listed))
	}
	for i, dept := range listed {
		if dept.Name != SeedDepartments[i].Name {
			t.Errorf("seed order broken at %d: got %s", i, dept.Name)
		}
	}
}

func TestSeedDepartmentsIdempotent(t *testing.T) {
	departments := newFakeDepartmentRepo()
	svc := NewDepartmentService(departments, zap.NewNop())

	if err := svc.EnsureSeedDepartments(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := svc.EnsureSeedDepartments(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if departments.creates != len(SeedDepartments) {
		t.Errorf("second run must insert nothing, got %d creates", departments.creates)
	}
}

func TestSeedSkippedOnNonEmptyRegistry(t *testing.T) {
	departments := newFakeDepartmentRepo()
	existing := SeedDepartments[0]
	_ = departments.Create(context.Background(), &existing)
	svc := NewDepartmentService(departments, zap.NewNop())

	if err := svc.EnsureSeedDepartments(context.Background()); err != nil {
		t.Fatalf("EnsureSeedDepartments failed: %v", err)
	}
	// Partial registries are never topped up; the check is table-empty only.
	if departments.creates != 1 {
		t.Errorf("non-empty registry must not be re-seeded, got %d creates", departments.creates)
	}
}
