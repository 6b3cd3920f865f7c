// Package memory provides mutex-guarded in-memory repositories. It backs
// local development runs without a database and gives the repository
// contract a reference implementation: newest-first ordering, snapshot
// reads, full-value replace, idempotent delete.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
)

// Store holds every collection behind one lock. All operations are
// synchronous read-then-write sequences, so the lock is what protects
// replace-by-id and upsert-by-key from lost updates under concurrent
// callers.
type Store struct {
	mu sync.RWMutex

	requests  []domain.ApprovalRequest
	logs      []domain.AttendanceLog
	entries   []domain.AttendanceEntry
	inventory []domain.InventoryRecord
	users     []domain.User

	// logByKey maps the composite business key to the stored log id, keeping
	// the attendance upsert O(1) instead of a scan.
	logByKey map[domain.AttendanceKey]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{logByKey: make(map[domain.AttendanceKey]string)}
}

// NewRepositoryProvider wires every repository facade onto one shared store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		RequestRepo:    s,
		AttendanceRepo: s,
		InventoryRepo:  s,
		UserRepo:       s,
	}
}

var (
	_ portsrepo.RequestRepositoryFacade    = (*Store)(nil)
	_ portsrepo.AttendanceRepositoryFacade = (*Store)(nil)
	_ portsrepo.InventoryRepositoryFacade  = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade       = (*Store)(nil)
)

func copyRequest(r domain.ApprovalRequest) domain.ApprovalRequest {
	out := r
	out.Payload = append([]byte(nil), r.Payload...)
	if r.ResolvedAt != nil {
		resolved := *r.ResolvedAt
		out.ResolvedAt = &resolved
	}
	return out
}

// --- approval requests ---

// SaveRequest prepends the request so listings read newest first.
func (s *Store) SaveRequest(_ context.Context, request domain.ApprovalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append([]domain.ApprovalRequest{copyRequest(request)}, s.requests...)
	return nil
}

// UpdateRequest replaces the stored record wholesale.
func (s *Store) UpdateRequest(_ context.Context, request domain.ApprovalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].RequestID == request.RequestID {
			s.requests[i] = copyRequest(request)
			return nil
		}
	}
	return fmt.Errorf("request %s: %w", request.RequestID, apperrors.ErrNotFound)
}

// DeleteRequest removes a request; deleting an absent id is a no-op.
func (s *Store) DeleteRequest(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].RequestID == requestID {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return nil
}

// FindRequestByID returns a snapshot of one request.
func (s *Store) FindRequestByID(_ context.Context, requestID string) (*domain.ApprovalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.requests {
		if s.requests[i].RequestID == requestID {
			out := copyRequest(s.requests[i])
			return &out, nil
		}
	}
	return nil, fmt.Errorf("request %s: %w", requestID, apperrors.ErrNotFound)
}

// ListRequests returns snapshots matching the filter, newest first.
func (s *Store) ListRequests(_ context.Context, filter portsrepo.RequestFilter) ([]domain.ApprovalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ApprovalRequest
	for i := range s.requests {
		r := &s.requests[i]
		if filter.SubjectType != "" && r.SubjectType != filter.SubjectType {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.RequestedBy != "" && r.RequestedBy != filter.RequestedBy {
			continue
		}
		out = append(out, copyRequest(*r))
	}
	return out, nil
}

// --- attendance ---

// ReplaceLog drops any log stored under the same composite key, together
// with its entries, then stores the new pair. Prepending keeps listings
// newest first.
func (s *Store) ReplaceLog(_ context.Context, log domain.AttendanceLog, entries []domain.AttendanceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldID, ok := s.logByKey[log.Key()]; ok {
		s.removeLogLocked(oldID)
	}

	s.logs = append([]domain.AttendanceLog{log}, s.logs...)
	s.entries = append(s.entries, entries...)
	s.logByKey[log.Key()] = log.AttendanceID
	return nil
}

// DeleteLog removes a log and its entries; absent ids are a no-op.
func (s *Store) DeleteLog(_ context.Context, attendanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLogLocked(attendanceID)
	return nil
}

func (s *Store) removeLogLocked(attendanceID string) {
	for i := range s.logs {
		if s.logs[i].AttendanceID == attendanceID {
			delete(s.logByKey, s.logs[i].Key())
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
			break
		}
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.AttendanceID != attendanceID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// FindLogByKey resolves the composite key through the key index.
func (s *Store) FindLogByKey(ctx context.Context, key domain.AttendanceKey) (*domain.AttendanceLog, error) {
	s.mu.RLock()
	id, ok := s.logByKey[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("attendance log %s/%s/%s: %w", key.Date, key.ProjectID, key.SubmitterID, apperrors.ErrNotFound)
	}
	return s.FindLogByID(ctx, id)
}

// FindLogByID returns a snapshot of one log.
func (s *Store) FindLogByID(_ context.Context, attendanceID string) (*domain.AttendanceLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.logs {
		if s.logs[i].AttendanceID == attendanceID {
			out := s.logs[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("attendance log %s: %w", attendanceID, apperrors.ErrNotFound)
}

// FindEntriesByLogID returns snapshots of the entries belonging to a log.
func (s *Store) FindEntriesByLogID(_ context.Context, attendanceID string) ([]domain.AttendanceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.AttendanceEntry
	for _, e := range s.entries {
		if e.AttendanceID == attendanceID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListLogs returns log snapshots, newest first.
func (s *Store) ListLogs(_ context.Context, projectID string) ([]domain.AttendanceLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.AttendanceLog
	for _, l := range s.logs {
		if projectID != "" && l.ProjectID != projectID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// --- inventory ---

// SaveRecord prepends the record so listings read newest first.
func (s *Store) SaveRecord(_ context.Context, record domain.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append([]domain.InventoryRecord{record}, s.inventory...)
	return nil
}

// AdjustQuantity applies the delta under the write lock, matching on both
// the item id and the location key.
func (s *Store) AdjustQuantity(_ context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventory {
		rec := &s.inventory[i]
		if rec.InventoryID != inventoryID || rec.LocationKey != locationKey {
			continue
		}
		if rec.QuantityOnHand+delta < 0 {
			return nil, fmt.Errorf("%w: adjustment would drive item %s at %s below zero", apperrors.ErrValidation, inventoryID, locationKey)
		}
		rec.QuantityOnHand += delta
		rec.LastUpdatedBy = updatedBy
		out := *rec
		return &out, nil
	}
	return nil, fmt.Errorf("item %s at %s: %w", inventoryID, locationKey, apperrors.ErrInventoryNotFound)
}

// FindRecord returns a snapshot of the record matching both keys.
func (s *Store) FindRecord(_ context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.inventory {
		if s.inventory[i].InventoryID == inventoryID && s.inventory[i].LocationKey == locationKey {
			out := s.inventory[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("item %s at %s: %w", inventoryID, locationKey, apperrors.ErrInventoryNotFound)
}

// ListRecords returns record snapshots, newest first.
func (s *Store) ListRecords(_ context.Context, locationKey string) ([]domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryRecord
	for _, rec := range s.inventory {
		if locationKey != "" && rec.LocationKey != locationKey {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// --- users ---

// SaveUser prepends the user; usernames are unique.
func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == user.Username && s.users[i].DeletedAt == nil {
			return fmt.Errorf("username %s: %w", user.Username, apperrors.ErrDuplicate)
		}
	}
	s.users = append([]domain.User{user}, s.users...)
	return nil
}

// MarkUserDeleted soft-deletes a user.
func (s *Store) MarkUserDeleted(_ context.Context, userID string, deletedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].UserID == userID && s.users[i].DeletedAt == nil {
			now := time.Now().UTC()
			s.users[i].DeletedAt = &now
			s.users[i].LastUpdatedAt = now
			s.users[i].LastUpdatedBy = deletedBy
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
}

// FindUserByID returns a snapshot of one user.
func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].UserID == userID && s.users[i].DeletedAt == nil {
			out := s.users[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
}

// FindUserByUsername returns a snapshot of one user.
func (s *Store) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Username == username && s.users[i].DeletedAt == nil {
			out := s.users[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
}

// ListUsers returns user snapshots, newest first.
func (s *Store) ListUsers(_ context.Context, limit, offset int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	skipped := 0
	for _, u := range s.users {
		if u.DeletedAt != nil {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
