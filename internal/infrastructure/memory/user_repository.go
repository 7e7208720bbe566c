package memory

import (
	"context"
	"strings"
	"time"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if strings.EqualFold(rec.val.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	seq := r.s.stamp(&u.ID, &u.CreatedAt)
	r.s.users[u.ID] = record[entity.User]{val: *u, seq: seq}
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := rec.val
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if strings.EqualFold(rec.val.Email, email) {
			u := rec.val
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.val.Role = role
	r.s.users[id] = rec
	return nil
}

func (r *UserRepository) List(_ context.Context, p repository.Page) ([]entity.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recs := make([]record[entity.User], 0, len(r.s.users))
	for _, rec := range r.s.users {
		recs = append(recs, rec)
	}
	newestFirst(recs, func(u entity.User) time.Time { return u.CreatedAt })
	out := make([]entity.User, 0, len(recs))
	for _, rec := range paginate(recs, p) {
		out = append(out, rec.val)
	}
	return out, len(recs), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
