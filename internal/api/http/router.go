package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-portal/internal/api/http/handlers"
	"github.com/spec-kit/complaint-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health               *handlers.HealthHandler
	Auth                 *handlers.AuthHandler
	Complaints           *handlers.ComplaintsHandler
	Departments          *handlers.DepartmentsHandler
	Admin                *handlers.AdminHandler
	DepartmentComplaints *handlers.DepartmentComplaintsHandler
	AuthMiddleware       *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/logout", auth.RequireAuthenticated(), cfg.Auth.Logout)
	api.Get("/user", auth.RequireAuthenticated(), cfg.Auth.CurrentUser)

	api.Get("/departments", cfg.Departments.List)

	api.Post("/complaints", auth.RequireAuthenticated(), cfg.Complaints.Create)
	api.Get("/complaints", auth.RequireAuthenticated(), cfg.Complaints.ListOwn)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/complaints", cfg.Admin.ListComplaints)
	admin.Patch("/complaints/:id/status", cfg.Admin.UpdateComplaintStatus)
	admin.Patch("/complaints/:id/department", cfg.Admin.AssignComplaintDepartment)
	admin.Patch("/users/:id/role", cfg.Admin.UpdateUserRole)

	department := api.Group("/department", auth.RequireDepartmentHead())
	department.Get("/complaints", cfg.DepartmentComplaints.List)
	department.Patch("/complaints/:id/status", cfg.DepartmentComplaints.UpdateStatus)
}
