package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-portal/internal/auth"
	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/events"
)

// In-memory repository fakes shared by the service tests.

type fakeComplaintRepo struct {
	mu         sync.Mutex
	nextID     int64
	complaints map[int64]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{nextID: 1, complaints: make(map[int64]*domain.Complaint)}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint.ID = r.nextID
	complaint.CreatedAt = time.Now()
	r.nextID++
	stored := *complaint
	r.complaints[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *complaint
	return &copied, nil
}

func (r *fakeComplaintRepo) ListByUser(_ context.Context, userID int64) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		if complaint.UserID == userID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *fakeComplaintRepo) ListByDepartment(_ context.Context, departmentID int64) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		if complaint.DepartmentID != nil && *complaint.DepartmentID == departmentID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *fakeComplaintRepo) ListAll(_ context.Context) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		result = append(result, *complaint)
	}
	return result, nil
}

func (r *fakeComplaintRepo) UpdateStatus(_ context.Context, id int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	complaint.Status = status
	copied := *complaint
	return &copied, nil
}

func (r *fakeComplaintRepo) AssignDepartment(_ context.Context, id int64, departmentID int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	complaint.DepartmentID = &departmentID
	complaint.Status = status
	copied := *complaint
	return &copied, nil
}

type fakeDepartmentRepo struct {
	mu          sync.Mutex
	nextID      int64
	departments map[int64]*domain.Department
	creates     int
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{nextID: 1, departments: make(map[int64]*domain.Department)}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept.ID = r.nextID
	r.nextID++
	r.creates++
	stored := *dept
	r.departments[dept.ID] = &stored
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *dept
	return &copied, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Department
	for id := int64(1); id < r.nextID; id++ {
		if dept, ok := r.departments[id]; ok {
			result = append(result, *dept)
		}
	}
	return result, nil
}

func (r *fakeDepartmentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.departments)), nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for id := int64(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, isDepartmentHead bool, departmentID *int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.IsDepartmentHead = isDepartmentHead
	user.DepartmentID = departmentID
	copied := *user
	return &copied, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]int64)}
}

func (s *fakeSessionStore) Create(_ context.Context, userID int64, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sessionID := fmt.Sprintf("sess-%d", s.nextID)
	s.sessions[sessionID] = userID
	return sessionID, nil
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return 0, auth.ErrSessionNotFound
	}
	return userID, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *captureDispatcher) published(eventType events.EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, event := range d.events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}
