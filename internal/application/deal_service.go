package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	repo "github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/validation"
)

// DealURLPrefix is prepended to a deal's id to form its canonical URL.
const DealURLPrefix = "TPDealExpress/deal/"

// DealService manages the deal lifecycle: submission, edits while pending,
// moderation and the public listings.
type DealService struct {
	Deals    repo.DealRepository
	Comments repo.CommentRepository
	Votes    repo.VoteRepository
	Events   EventPublisher
	Logger   *logrus.Logger
}

func NewDealService(deals repo.DealRepository, comments repo.CommentRepository, votes repo.VoteRepository, events EventPublisher, logger *logrus.Logger) *DealService {
	return &DealService{Deals: deals, Comments: comments, Votes: votes, Events: events, Logger: logger}
}

type CreateDealInput struct {
	Title         string
	Description   string
	Category      string
	Price         *float64
	OriginalPrice *float64
}

// DealUpdate carries the allow-listed editable fields; nil means unchanged.
type DealUpdate struct {
	Title         *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	URL           *string
	Category      *string
}

// DealDetail is a deal with its comments and vote counts.
type DealDetail struct {
	Deal     *entity.Deal
	Comments []entity.Comment
	Votes    entity.VoteTally
}

func (s *DealService) Create(ctx context.Context, author *entity.User, in CreateDealInput) (*entity.Deal, error) {
	if author == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || in.Description == "" || in.Category == "" || in.Price == nil {
		return nil, apperror.Validation("Missing required fields")
	}

	id := uuid.NewString()
	d := &entity.Deal{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Price:         *in.Price,
		OriginalPrice: in.OriginalPrice,
		URL:           DealURLPrefix + id,
		Category:      in.Category,
		Status:        entity.DealPending,
		AuthorID:      author.ID,
	}
	if err := validation.Struct(d); err != nil {
		return nil, invalid(err, "Invalid deal")
	}
	if err := s.Deals.Create(ctx, d); err != nil {
		return nil, err
	}
	d.Author = &entity.UserSummary{ID: author.ID, Username: author.Username}

	publish(ctx, s.Events, s.Logger, EventDealCreated, map[string]any{
		"dealId":   d.ID,
		"authorId": d.AuthorID,
		"title":    d.Title,
	})
	return d, nil
}

// publicAuthor trims author details to what anonymous readers may see.
func publicAuthor(deals []entity.Deal) []entity.Deal {
	for i := range deals {
		if a := deals[i].Author; a != nil {
			deals[i].Author = &entity.UserSummary{ID: a.ID, Username: a.Username}
		}
	}
	return deals
}

// List pages through approved deals, newest first.
func (s *DealService) List(ctx context.Context, page, limit int) (PageResult[entity.Deal], error) {
	p := NewPage(page, limit)
	deals, total, err := s.Deals.List(ctx, repo.DealFilter{Status: entity.DealApproved}, p)
	if err != nil {
		return PageResult[entity.Deal]{}, err
	}
	return newPageResult(publicAuthor(deals), p, total), nil
}

// Search matches q case-insensitively against title or description of approved deals.
func (s *DealService) Search(ctx context.Context, q string, page, limit int) (PageResult[entity.Deal], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return PageResult[entity.Deal]{}, apperror.Validation("Query parameter 'q' is required.")
	}
	p := NewPage(page, limit)
	deals, total, err := s.Deals.List(ctx, repo.DealFilter{Status: entity.DealApproved, Query: q}, p)
	if err != nil {
		return PageResult[entity.Deal]{}, err
	}
	return newPageResult(publicAuthor(deals), p, total), nil
}

// ListPending returns the whole moderation queue with author username and email.
func (s *DealService) ListPending(ctx context.Context) ([]entity.Deal, error) {
	deals, _, err := s.Deals.List(ctx, repo.DealFilter{Status: entity.DealPending}, repo.Page{Page: 1})
	if err != nil {
		return nil, err
	}
	for i := range deals {
		if a := deals[i].Author; a != nil {
			deals[i].Author = &entity.UserSummary{ID: a.ID, Username: a.Username, Email: a.Email}
		}
	}
	return deals, nil
}

// Get loads the deal, its comments and the live vote counts concurrently.
// The stored temperature is authoritative; a drift from the live count is logged.
func (s *DealService) Get(ctx context.Context, id string) (*DealDetail, error) {
	var (
		deal     *entity.Deal
		comments []entity.Comment
		tally    entity.VoteTally
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deal, err = s.Deals.GetByID(gctx, id)
		return notFound(err, "Deal not found")
	})
	g.Go(func() error {
		var err error
		comments, err = s.Comments.ListByDeal(gctx, id)
		return notFound(err, "Deal not found")
	})
	g.Go(func() error {
		var err error
		tally, err = s.Votes.Tally(gctx, id)
		return notFound(err, "Deal not found")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if tally.Temperature != deal.Temperature && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"deal_id": id,
			"stored":  deal.Temperature,
			"counted": tally.Temperature,
		}).Warn("deal temperature drifted from vote count")
	}
	tally.Temperature = deal.Temperature
	deal = &publicAuthor([]entity.Deal{*deal})[0]
	return &DealDetail{Deal: deal, Comments: comments, Votes: tally}, nil
}

func (s *DealService) loadManaged(ctx context.Context, id string, requester *entity.User, action string) (*entity.Deal, error) {
	if requester == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	d, err := s.Deals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Deal not found")
	}
	if !canManage(requester, d) {
		return nil, apperror.Forbidden("You do not have permission to " + action + " this deal")
	}
	return d, nil
}

// Update edits a pending deal. Only the author or an admin may edit.
func (s *DealService) Update(ctx context.Context, id string, requester *entity.User, in DealUpdate) (*entity.Deal, error) {
	d, err := s.loadManaged(ctx, id, requester, "modify")
	if err != nil {
		return nil, err
	}
	if !d.Editable() {
		return nil, apperror.State("Only deals with status 'pending' can be edited")
	}

	if in.Title != nil {
		d.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		d.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		d.OriginalPrice = in.OriginalPrice
	}
	if in.URL != nil {
		d.URL = strings.TrimSpace(*in.URL)
	}
	if in.Category != nil {
		d.Category = strings.TrimSpace(*in.Category)
	}
	if err := validation.Struct(d); err != nil {
		return nil, invalid(err, "Invalid deal")
	}
	if err := s.Deals.Update(ctx, d); err != nil {
		return nil, notFound(err, "Deal not found")
	}
	return d, nil
}

// Delete removes a deal in any status, together with its comments and votes.
func (s *DealService) Delete(ctx context.Context, id string, requester *entity.User) error {
	if _, err := s.loadManaged(ctx, id, requester, "delete"); err != nil {
		return err
	}
	if err := s.Deals.Delete(ctx, id); err != nil {
		return notFound(err, "Deal not found")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"deal_id": id, "user_id": requester.ID}).Info("deal deleted")
	}
	return nil
}

// Moderate moves a pending deal to approved or rejected. It is one-shot.
func (s *DealService) Moderate(ctx context.Context, id string, moderator *entity.User, status entity.DealStatus) (*entity.Deal, error) {
	if err := RequireAnyRole(moderator, entity.RoleModerator, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if status != entity.DealApproved && status != entity.DealRejected {
		return nil, apperror.Validation("Status must be 'approved' or 'rejected'")
	}
	d, err := s.Deals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Deal not found")
	}
	if d.Status != entity.DealPending {
		return nil, apperror.State("Only pending deals can be moderated")
	}
	d.Status = status
	if err := s.Deals.Update(ctx, d); err != nil {
		return nil, notFound(err, "Deal not found")
	}

	publish(ctx, s.Events, s.Logger, EventDealModerated, map[string]any{
		"dealId":      d.ID,
		"authorId":    d.AuthorID,
		"status":      d.Status,
		"moderatorId": moderator.ID,
	})
	return d, nil
}
