package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	repo "github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
)

// VoteService keeps one vote per (user, deal) and the deal's temperature in step.
// Every decision runs under a per-deal lock so concurrent votes cannot lose updates.
type VoteService struct {
	Deals  repo.DealRepository
	Votes  repo.VoteRepository
	Locker Locker
	Logger *logrus.Logger
}

func NewVoteService(deals repo.DealRepository, votes repo.VoteRepository, locker Locker, logger *logrus.Logger) *VoteService {
	return &VoteService{Deals: deals, Votes: votes, Locker: locker, Logger: logger}
}

// VoteResult reports the stored vote and whether it was newly created.
type VoteResult struct {
	Vote    *entity.Vote
	Created bool
}

func dealLockKey(dealID string) string { return "deal:vote:" + dealID }

func (s *VoteService) lock(ctx context.Context, dealID string) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}
	return s.Locker.Lock(ctx, dealLockKey(dealID))
}

// Cast records a hot or cold vote. A first vote moves the temperature by ±1,
// switching sides moves it by ±2, and repeating the same vote is a conflict.
func (s *VoteService) Cast(ctx context.Context, dealID string, user *entity.User, t entity.VoteType) (*VoteResult, error) {
	if user == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !t.Valid() {
		return nil, apperror.Validation("Vote type must be 'hot' or 'cold'")
	}

	unlock, err := s.lock(ctx, dealID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.Deals.GetByID(ctx, dealID); err != nil {
		return nil, notFound(err, "Deal not found")
	}

	existing, err := s.Votes.Get(ctx, dealID, user.ID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		v := &entity.Vote{Type: t, UserID: user.ID, DealID: dealID}
		if err := s.Votes.Create(ctx, v, t.Weight()); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return nil, apperror.Conflict("You already voted on this deal").Wrap(err)
			}
			return nil, notFound(err, "Deal not found")
		}
		return &VoteResult{Vote: v, Created: true}, nil
	}

	if existing.Type == t {
		return nil, apperror.Conflict("You already voted this way")
	}

	// reverse the old contribution and apply the new one in a single step
	delta := t.Weight() - existing.Type.Weight()
	existing.Type = t
	if err := s.Votes.ChangeType(ctx, existing, delta); err != nil {
		return nil, notFound(err, "Deal not found")
	}
	return &VoteResult{Vote: existing, Created: false}, nil
}

// Remove retracts the user's vote and reverses its contribution.
func (s *VoteService) Remove(ctx context.Context, dealID string, user *entity.User) error {
	if user == nil {
		return apperror.Unauthorized("User not authenticated")
	}

	unlock, err := s.lock(ctx, dealID)
	if err != nil {
		return err
	}
	defer unlock()

	v, err := s.Votes.Get(ctx, dealID, user.ID)
	if err != nil {
		return notFound(err, "You haven't voted for this deal")
	}
	if _, err := s.Deals.GetByID(ctx, dealID); err != nil {
		return notFound(err, "Deal not found")
	}
	if err := s.Votes.Delete(ctx, v, -v.Type.Weight()); err != nil {
		return notFound(err, "You haven't voted for this deal")
	}
	return nil
}
