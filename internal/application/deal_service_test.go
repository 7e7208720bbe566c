package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
)

func TestDealService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.deals.Create(ctx, f.alice, CreateDealInput{
		Title:         "Robot vacuum",
		Description:   "Half price robot vacuum cleaner",
		Category:      "Maison",
		Price:         price(0),
		OriginalPrice: price(300),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DealPending, d.Status)
	assert.Equal(t, 0, d.Temperature)
	assert.Equal(t, f.alice.ID, d.AuthorID)
	assert.Equal(t, DealURLPrefix+d.ID, d.URL)
	assert.Equal(t, []string{EventDealCreated}, f.events.names())

	_, err = f.deals.Create(ctx, f.alice, CreateDealInput{Title: "Robot vacuum", Category: "Maison", Price: price(1)})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.deals.Create(ctx, f.alice, CreateDealInput{Title: "Robot vacuum", Description: "Half price robot", Category: "Maison"})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.deals.Create(ctx, f.alice, CreateDealInput{Title: "Robot vacuum", Description: "Half price robot", Category: "Cars", Price: price(1)})
	requireKind(t, err, apperror.KindValidation)
}

func TestDealService_ListAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tv := f.approved(t, f.alice, "OLED television", "A 55 inch screen with a rare discount")
	f.approved(t, f.alice, "Gaming chair", "Ergonomic chair for long sessions")
	f.deal(t, f.bob, "Secret pending", "A hidden bargain nobody approved yet")

	page, err := f.deals.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, DefaultLimit, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Gaming chair", page.Items[0].Title, "newest first")
	require.NotNil(t, page.Items[0].Author)
	assert.Equal(t, "alice", page.Items[0].Author.Username)
	assert.Empty(t, page.Items[0].Author.Email, "public listings hide author email")

	page, err = f.deals.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, tv.ID, page.Items[0].ID)

	res, err := f.deals.Search(ctx, "RARE DISCOUNT", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, tv.ID, res.Items[0].ID)

	res, err = f.deals.Search(ctx, "hidden bargain", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Items)

	_, err = f.deals.Search(ctx, "   ", 1, 10)
	requireKind(t, err, apperror.KindValidation)
}

func TestDealService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.deal(t, f.alice, "Wireless mouse", "Silent clicks and long battery life")

	title := "Wireless mouse v2"
	updated, err := f.deals.Update(ctx, d.ID, f.alice, DealUpdate{Title: &title, Price: price(12.5)})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, entity.DealPending, updated.Status)

	_, err = f.deals.Update(ctx, d.ID, f.bob, DealUpdate{Title: &title})
	requireKind(t, err, apperror.KindForbidden)

	_, err = f.deals.Update(ctx, d.ID, f.mod, DealUpdate{Title: &title})
	requireKind(t, err, apperror.KindForbidden)

	adminTitle := "Wireless mouse (admin)"
	_, err = f.deals.Update(ctx, d.ID, f.root, DealUpdate{Title: &adminTitle})
	require.NoError(t, err)

	short := "abc"
	_, err = f.deals.Update(ctx, d.ID, f.alice, DealUpdate{Title: &short})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.deals.Update(ctx, "missing", f.alice, DealUpdate{Title: &title})
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.deals.Moderate(ctx, d.ID, f.mod, entity.DealRejected)
	require.NoError(t, err)
	for _, u := range []*entity.User{f.alice, f.root} {
		_, err = f.deals.Update(ctx, d.ID, u, DealUpdate{Title: &title})
		requireKind(t, err, apperror.KindState)
	}
}

func TestDealService_Moderate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.deal(t, f.alice, "Coffee grinder", "Burr grinder at its lowest price")

	_, err := f.deals.Moderate(ctx, d.ID, f.alice, entity.DealApproved)
	requireKind(t, err, apperror.KindForbidden)

	_, err = f.deals.Moderate(ctx, d.ID, f.mod, entity.DealPending)
	requireKind(t, err, apperror.KindValidation)

	_, err = f.deals.Moderate(ctx, "missing", f.mod, entity.DealApproved)
	requireKind(t, err, apperror.KindNotFound)

	pending, err := f.deals.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice@example.com", pending[0].Author.Email)
	assert.Equal(t, "alice", pending[0].Author.Username)
	assert.Empty(t, pending[0].Author.Role)

	got, err := f.deals.Moderate(ctx, d.ID, f.root, entity.DealApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.DealApproved, got.Status)
	assert.Contains(t, f.events.names(), EventDealModerated)

	_, err = f.deals.Moderate(ctx, d.ID, f.mod, entity.DealRejected)
	requireKind(t, err, apperror.KindState)

	pending, err = f.deals.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDealService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.approved(t, f.alice, "Camping tent", "Four person tent for summer trips")

	_, err := f.comments.Add(ctx, d.ID, f.bob, "Great tent, bought two")
	require.NoError(t, err)
	_, err = f.votes.Cast(ctx, d.ID, f.bob, entity.VoteHot)
	require.NoError(t, err)

	requireKind(t, f.deals.Delete(ctx, d.ID, f.bob), apperror.KindForbidden)
	require.NoError(t, f.deals.Delete(ctx, d.ID, f.alice))

	_, err = f.deals.Get(ctx, d.ID)
	requireKind(t, err, apperror.KindNotFound)
	comments, err := f.repos.Comments.ListByDeal(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	tally, err := f.repos.Votes.Tally(ctx, d.ID)
	require.NoError(t, err)
	assert.Zero(t, tally.Hot)

	requireKind(t, f.deals.Delete(ctx, d.ID, f.root), apperror.KindNotFound)
}

func TestDealService_GetDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.approved(t, f.alice, "Electric kettle", "Fast boil kettle with temperature presets")

	first, err := f.comments.Add(ctx, d.ID, f.bob, "First comment on this kettle")
	require.NoError(t, err)
	second, err := f.comments.Add(ctx, d.ID, f.alice, "Second comment on this kettle")
	require.NoError(t, err)
	_, err = f.votes.Cast(ctx, d.ID, f.bob, entity.VoteHot)
	require.NoError(t, err)
	_, err = f.votes.Cast(ctx, d.ID, f.mod, entity.VoteCold)
	require.NoError(t, err)
	_, err = f.votes.Cast(ctx, d.ID, f.root, entity.VoteHot)
	require.NoError(t, err)

	detail, err := f.deals.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Deal.Author.Username)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, second.ID, detail.Comments[0].ID)
	assert.Equal(t, first.ID, detail.Comments[1].ID)
	assert.Equal(t, "bob", detail.Comments[1].Author.Username)
	assert.Equal(t, entity.VoteTally{Hot: 2, Cold: 1, Temperature: 1}, detail.Votes)
	assert.Equal(t, 1, detail.Deal.Temperature)
}
