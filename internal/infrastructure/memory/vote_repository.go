package memory

import (
	"context"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type VoteRepository struct {
	s *Store
}

// find locates the (deal, user) vote. Caller holds mu.
func (r *VoteRepository) find(dealID, userID string) (record[entity.Vote], bool) {
	for _, rec := range r.s.votes {
		if rec.val.DealID == dealID && rec.val.UserID == userID {
			return rec, true
		}
	}
	return record[entity.Vote]{}, false
}

// adjust adds delta to the deal's temperature. Caller holds mu.
func (r *VoteRepository) adjust(dealID string, delta int) error {
	rec, ok := r.s.deals[dealID]
	if !ok {
		return repository.ErrNotFound
	}
	rec.val.Temperature += delta
	r.s.deals[dealID] = rec
	return nil
}

func (r *VoteRepository) Get(_ context.Context, dealID, userID string) (*entity.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.find(dealID, userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := rec.val
	return &v, nil
}

func (r *VoteRepository) Create(_ context.Context, v *entity.Vote, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.find(v.DealID, v.UserID); ok {
		return repository.ErrDuplicate
	}
	if err := r.adjust(v.DealID, delta); err != nil {
		return err
	}
	seq := r.s.stamp(&v.ID, &v.CreatedAt)
	r.s.votes[v.ID] = record[entity.Vote]{val: *v, seq: seq}
	return nil
}

func (r *VoteRepository) ChangeType(_ context.Context, v *entity.Vote, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.votes[v.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.adjust(v.DealID, delta); err != nil {
		return err
	}
	rec.val.Type = v.Type
	r.s.votes[v.ID] = rec
	return nil
}

func (r *VoteRepository) Delete(_ context.Context, v *entity.Vote, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.votes[v.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.adjust(v.DealID, delta); err != nil {
		return err
	}
	delete(r.s.votes, v.ID)
	return nil
}

func (r *VoteRepository) Tally(_ context.Context, dealID string) (entity.VoteTally, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var t entity.VoteTally
	for _, rec := range r.s.votes {
		if rec.val.DealID != dealID {
			continue
		}
		if rec.val.Type == entity.VoteHot {
			t.Hot++
		} else {
			t.Cold++
		}
	}
	t.Temperature = t.Hot - t.Cold
	return t, nil
}

var _ repository.VoteRepository = (*VoteRepository)(nil)
