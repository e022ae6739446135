package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-portal/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Records are
// append-created; only status and department assignment ever change.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Complaint, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.Complaint, error)
	AssignDepartment(ctx context.Context, id int64, departmentID int64, status domain.ComplaintStatus) (*domain.Complaint, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, user_id, type, description, status, department_id, created_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, type, description, status, department_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		complaint.UserID,
		complaint.Type,
		complaint.Description,
		complaint.Status,
		complaint.DepartmentID,
	).Scan(&complaint.ID, &complaint.CreatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	return r.scanSingle(r.pool.QueryRow(ctx, query, id))
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE department_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	const query = `
        UPDATE complaints SET status=$1
        WHERE id=$2
        RETURNING ` + complaintColumns
	return r.scanSingle(r.pool.QueryRow(ctx, query, status, id))
}

func (r *complaintRepository) AssignDepartment(ctx context.Context, id int64, departmentID int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	const query = `
        UPDATE complaints SET department_id=$1, status=$2
        WHERE id=$3
        RETURNING ` + complaintColumns
	return r.scanSingle(r.pool.QueryRow(ctx, query, departmentID, status, id))
}

func (r *complaintRepository) scanSingle(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.Type,
		&complaint.Description,
		&complaint.Status,
		&complaint.DepartmentID,
		&complaint.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.UserID,
			&complaint.Type,
			&complaint.Description,
			&complaint.Status,
			&complaint.DepartmentID,
			&complaint.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
