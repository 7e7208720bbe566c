// Package memory is a process-local storage driver. It backs the test suites
// and STORAGE_DRIVER=memory for running the API without postgres.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type record[T any] struct {
	val T
	seq int64
}

// Store holds every collection behind one lock so vote writes and
// temperature updates are applied together.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users    map[string]record[entity.User]
	deals    map[string]record[entity.Deal]
	comments map[string]record[entity.Comment]
	votes    map[string]record[entity.Vote]
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    map[string]record[entity.User]{},
		deals:    map[string]record[entity.Deal]{},
		comments: map[string]record[entity.Comment]{},
		votes:    map[string]record[entity.Vote]{},
	}
}

// Repositories exposes the store through the domain repository interfaces.
func (s *Store) Repositories() repository.Set {
	return repository.Set{
		Users:    &UserRepository{s: s},
		Deals:    &DealRepository{s: s},
		Comments: &CommentRepository{s: s},
		Votes:    &VoteRepository{s: s},
	}
}

// stamp assigns id, creation time and insertion sequence. Caller holds mu.
func (s *Store) stamp(id *string, created *time.Time) int64 {
	if *id == "" {
		*id = uuid.NewString()
	}
	if created.IsZero() {
		*created = s.now().UTC()
	}
	s.seq++
	return s.seq
}

// newestFirst orders records by creation time, then by insertion order.
func newestFirst[T any](recs []record[T], created func(T) time.Time) {
	sort.SliceStable(recs, func(i, j int) bool {
		ci, cj := created(recs[i].val), created(recs[j].val)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return recs[i].seq > recs[j].seq
	})
}

func paginate[T any](items []T, p repository.Page) []T {
	off := p.Offset()
	if off < 0 || off >= len(items) {
		return []T{}
	}
	end := off + p.Limit
	if p.Limit < 1 || end < off || end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

func (s *Store) summary(userID string, withEmail bool) *entity.UserSummary {
	r, ok := s.users[userID]
	if !ok {
		return nil
	}
	sum := &entity.UserSummary{ID: r.val.ID, Username: r.val.Username}
	if withEmail {
		sum.Email = r.val.Email
		sum.Role = r.val.Role
	}
	return sum
}
