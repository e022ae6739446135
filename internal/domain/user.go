package domain

import "time"

// User is the domain model for citizens and staff alike. Role capabilities
// are independent boolean flags, not a hierarchy: an account may hold both,
// and neither implies the other.
type User struct {
	ID               int64
	Username         string
	PasswordHash     string
	FullName         string
	Email            string
	IsAdmin          bool
	IsDepartmentHead bool
	DepartmentID     *int64
	CreatedAt        time.Time
}
