package memory

import (
	"context"
	"strings"
	"time"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type DealRepository struct {
	s *Store
}

func (r *DealRepository) Create(_ context.Context, d *entity.Deal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deals[d.ID]; ok && d.ID != "" {
		return repository.ErrDuplicate
	}
	seq := r.s.stamp(&d.ID, &d.CreatedAt)
	stored := *d
	stored.Author = nil
	r.s.deals[d.ID] = record[entity.Deal]{val: stored, seq: seq}
	return nil
}

func (r *DealRepository) GetByID(_ context.Context, id string) (*entity.Deal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.deals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := rec.val
	d.Author = r.s.summary(d.AuthorID, true)
	return &d, nil
}

func (r *DealRepository) Update(_ context.Context, d *entity.Deal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.deals[d.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur := &rec.val
	cur.Title = d.Title
	cur.Description = d.Description
	cur.Price = d.Price
	cur.OriginalPrice = d.OriginalPrice
	cur.URL = d.URL
	cur.Category = d.Category
	cur.Status = d.Status
	r.s.deals[d.ID] = rec
	d.Temperature = cur.Temperature
	return nil
}

func (r *DealRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.deals, id)
	for cid, c := range r.s.comments {
		if c.val.DealID == id {
			delete(r.s.comments, cid)
		}
	}
	for vid, v := range r.s.votes {
		if v.val.DealID == id {
			delete(r.s.votes, vid)
		}
	}
	return nil
}

func (r *DealRepository) List(_ context.Context, f repository.DealFilter, p repository.Page) ([]entity.Deal, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(f.Query)
	recs := make([]record[entity.Deal], 0)
	for _, rec := range r.s.deals {
		if f.Status != "" && rec.val.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(rec.val.Title), q) &&
			!strings.Contains(strings.ToLower(rec.val.Description), q) {
			continue
		}
		recs = append(recs, rec)
	}
	newestFirst(recs, func(d entity.Deal) time.Time { return d.CreatedAt })
	out := make([]entity.Deal, 0)
	for _, rec := range paginate(recs, p) {
		d := rec.val
		d.Author = r.s.summary(d.AuthorID, true)
		out = append(out, d)
	}
	return out, len(recs), nil
}

var _ repository.DealRepository = (*DealRepository)(nil)
