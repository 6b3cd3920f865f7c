package memory_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	"github.com/buildsuite/site_ops_app/internal/repositories/database/memory"
)

func newRequest(id string, subject domain.RequestSubject) domain.ApprovalRequest {
	return domain.ApprovalRequest{
		RequestID:   id,
		SubjectType: subject,
		Payload:     json.RawMessage(`{"quantity":1}`),
		Status:      domain.StatusPending,
		RequestedBy: "engineer-1",
	}
}

func TestStore_Requests(t *testing.T) {
	ctx := context.Background()

	t.Run("list reads newest first", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveRequest(ctx, newRequest("r-1", domain.SubjectAsset)))
		require.NoError(t, s.SaveRequest(ctx, newRequest("r-2", domain.SubjectStock)))
		require.NoError(t, s.SaveRequest(ctx, newRequest("r-3", domain.SubjectAsset)))

		all, err := s.ListRequests(ctx, portsrepo.RequestFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "r-3", all[0].RequestID)
		assert.Equal(t, "r-1", all[2].RequestID)

		assets, err := s.ListRequests(ctx, portsrepo.RequestFilter{SubjectType: domain.SubjectAsset})
		require.NoError(t, err)
		require.Len(t, assets, 2)
	})

	t.Run("reads are snapshots", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveRequest(ctx, newRequest("r-1", domain.SubjectAsset)))

		got, err := s.FindRequestByID(ctx, "r-1")
		require.NoError(t, err)
		got.Status = domain.StatusApproved
		got.Payload[0] = 'X'

		again, err := s.FindRequestByID(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, again.Status)
		assert.Equal(t, json.RawMessage(`{"quantity":1}`), again.Payload)
	})

	t.Run("update replaces wholesale and misses report not found", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveRequest(ctx, newRequest("r-1", domain.SubjectAsset)))

		updated := newRequest("r-1", domain.SubjectAsset)
		updated.Status = domain.StatusApproved
		require.NoError(t, s.UpdateRequest(ctx, updated))

		got, err := s.FindRequestByID(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, got.Status)

		err = s.UpdateRequest(ctx, newRequest("r-404", domain.SubjectAsset))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveRequest(ctx, newRequest("r-1", domain.SubjectAsset)))
		require.NoError(t, s.DeleteRequest(ctx, "r-1"))
		require.NoError(t, s.DeleteRequest(ctx, "r-1"))

		_, err := s.FindRequestByID(ctx, "r-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func attendancePair(logID, date, project, submitter string, people ...string) (domain.AttendanceLog, []domain.AttendanceEntry) {
	entries := make([]domain.AttendanceEntry, len(people))
	for i, p := range people {
		entries[i] = domain.AttendanceEntry{
			EntryID:      logID + "-" + p,
			AttendanceID: logID,
			PersonID:     p,
			Status:       domain.MarkPresent,
		}
	}
	log := domain.AttendanceLog{
		AttendanceID: logID,
		Date:         date,
		ProjectID:    project,
		SubmitterID:  submitter,
		Summary:      domain.Summarize(entries),
	}
	return log, entries
}

func TestStore_AttendanceKeyedUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("same key replaces log and entries", func(t *testing.T) {
		s := memory.NewStore()
		log1, entries1 := attendancePair("log-1", "2026-03-14", "proj-1", "engineer-1", "w-1", "w-2", "w-3")
		require.NoError(t, s.ReplaceLog(ctx, log1, entries1))

		log2, entries2 := attendancePair("log-2", "2026-03-14", "proj-1", "engineer-1", "w-1")
		require.NoError(t, s.ReplaceLog(ctx, log2, entries2))

		got, err := s.FindLogByKey(ctx, domain.AttendanceKey{Date: "2026-03-14", ProjectID: "proj-1", SubmitterID: "engineer-1"})
		require.NoError(t, err)
		assert.Equal(t, "log-2", got.AttendanceID)

		// The first submission is gone entirely, entries included.
		_, err = s.FindLogByID(ctx, "log-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		orphaned, err := s.FindEntriesByLogID(ctx, "log-1")
		require.NoError(t, err)
		assert.Empty(t, orphaned)

		kept, err := s.FindEntriesByLogID(ctx, "log-2")
		require.NoError(t, err)
		assert.Len(t, kept, 1)

		logs, err := s.ListLogs(ctx, "proj-1")
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("different keys accumulate", func(t *testing.T) {
		s := memory.NewStore()
		logA, entriesA := attendancePair("log-a", "2026-03-14", "proj-1", "engineer-1", "w-1")
		logB, entriesB := attendancePair("log-b", "2026-03-15", "proj-1", "engineer-1", "w-1")
		logC, entriesC := attendancePair("log-c", "2026-03-14", "proj-2", "engineer-1", "w-1")
		require.NoError(t, s.ReplaceLog(ctx, logA, entriesA))
		require.NoError(t, s.ReplaceLog(ctx, logB, entriesB))
		require.NoError(t, s.ReplaceLog(ctx, logC, entriesC))

		all, err := s.ListLogs(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, "log-c", all[0].AttendanceID)

		proj1, err := s.ListLogs(ctx, "proj-1")
		require.NoError(t, err)
		assert.Len(t, proj1, 2)
	})

	t.Run("delete cascades to entries and is idempotent", func(t *testing.T) {
		s := memory.NewStore()
		log1, entries1 := attendancePair("log-1", "2026-03-14", "proj-1", "engineer-1", "w-1", "w-2")
		require.NoError(t, s.ReplaceLog(ctx, log1, entries1))

		require.NoError(t, s.DeleteLog(ctx, "log-1"))
		require.NoError(t, s.DeleteLog(ctx, "log-1"))

		_, err := s.FindLogByKey(ctx, log1.Key())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		entries, err := s.FindEntriesByLogID(ctx, "log-1")
		require.NoError(t, err)
		assert.Empty(t, entries)

		// The key is free for a fresh submission.
		log2, entries2 := attendancePair("log-2", "2026-03-14", "proj-1", "engineer-1", "w-1")
		require.NoError(t, s.ReplaceLog(ctx, log2, entries2))
	})
}

func TestStore_Inventory(t *testing.T) {
	ctx := context.Background()

	t.Run("adjust matches on both keys", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveRecord(ctx, domain.InventoryRecord{InventoryID: "inv-1", LocationKey: "site-a", QuantityOnHand: 100}))
		require.NoError(t, s.SaveRecord(ctx, domain.InventoryRecord{InventoryID: "inv-1", LocationKey: "site-b", QuantityOnHand: 40}))

		updated, err := s.AdjustQuantity(ctx, "inv-1", "site-a", -30, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, int64(70), updated.QuantityOnHand)

		other, err := s.FindRecord(ctx, "inv-1", "site-b")
		require.NoError(t, err)
		assert.Equal(t, int64(40), other.QuantityOnHand)
	})

	t.Run("adjust refuses to go negative", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveRecord(ctx, domain.InventoryRecord{InventoryID: "inv-1", LocationKey: "site-a", QuantityOnHand: 10}))

		_, err := s.AdjustQuantity(ctx, "inv-1", "site-a", -11, "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		rec, err := s.FindRecord(ctx, "inv-1", "site-a")
		require.NoError(t, err)
		assert.Equal(t, int64(10), rec.QuantityOnHand)
	})

	t.Run("missing record reports the inventory sentinel", func(t *testing.T) {
		s := memory.NewStore()
		_, err := s.AdjustQuantity(ctx, "inv-x", "site-a", 5, "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrInventoryNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate username rejected", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveUser(ctx, domain.User{UserID: "u-1", Username: "engineer"}))

		err := s.SaveUser(ctx, domain.User{UserID: "u-2", Username: "engineer"})
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("soft delete hides and frees the username", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveUser(ctx, domain.User{UserID: "u-1", Username: "engineer"}))
		require.NoError(t, s.MarkUserDeleted(ctx, "u-1", "admin-1"))

		_, err := s.FindUserByID(ctx, "u-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = s.FindUserByUsername(ctx, "engineer")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		require.NoError(t, s.SaveUser(ctx, domain.User{UserID: "u-2", Username: "engineer"}))
	})

	t.Run("list paginates newest first", func(t *testing.T) {
		s := memory.NewStore()
		require.NoError(t, s.SaveUser(ctx, domain.User{UserID: "u-1", Username: "a"}))
		require.NoError(t, s.SaveUser(ctx, domain.User{UserID: "u-2", Username: "b"}))
		require.NoError(t, s.SaveUser(ctx, domain.User{UserID: "u-3", Username: "c"}))

		page, err := s.ListUsers(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "u-2", page[0].UserID)
		assert.Equal(t, "u-1", page[1].UserID)
	})
}
