package domain

// Department represents a municipal organizational unit.
type Department struct {
	ID          int64
	Name        string
	Description string
}
