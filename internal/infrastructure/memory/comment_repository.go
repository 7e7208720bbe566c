package memory

import (
	"context"
	"time"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deals[c.DealID]; !ok {
		return repository.ErrNotFound
	}
	seq := r.s.stamp(&c.ID, &c.CreatedAt)
	stored := *c
	stored.Author = nil
	r.s.comments[c.ID] = record[entity.Comment]{val: stored, seq: seq}
	c.Author = r.s.summary(c.AuthorID, false)
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := rec.val
	c.Author = r.s.summary(c.AuthorID, false)
	return &c, nil
}

func (r *CommentRepository) UpdateContent(_ context.Context, id, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.val.Content = content
	r.s.comments[id] = rec
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *CommentRepository) ListByDeal(_ context.Context, dealID string) ([]entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recs := make([]record[entity.Comment], 0)
	for _, rec := range r.s.comments {
		if rec.val.DealID == dealID {
			recs = append(recs, rec)
		}
	}
	newestFirst(recs, func(c entity.Comment) time.Time { return c.CreatedAt })
	out := make([]entity.Comment, 0, len(recs))
	for _, rec := range recs {
		c := rec.val
		c.Author = r.s.summary(c.AuthorID, false)
		out = append(out, c)
	}
	return out, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
