package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/internal/infrastructure/lock"
	"github.com/dealexpress/dealexpress-api/internal/infrastructure/memory"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/helpers"
)

func init() { helpers.PasswordCost = bcrypt.MinCost }

type recordedEvent struct {
	name    string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{name: event, payload: payload})
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.name)
	}
	return out
}

type fixture struct {
	repos    repository.Set
	events   *recordingPublisher
	auth     *AuthService
	deals    *DealService
	votes    *VoteService
	comments *CommentService
	admin    *AdminService

	alice, bob, mod, root *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewStore().Repositories()
	logger := helpers.NewNopLogger()
	events := &recordingPublisher{}
	f := &fixture{
		repos:    repos,
		events:   events,
		auth:     NewAuthService(repos.Users, helpers.NewJWTManager("test-secret", 7*24*time.Hour), logger),
		deals:    NewDealService(repos.Deals, repos.Comments, repos.Votes, events, logger),
		votes:    NewVoteService(repos.Deals, repos.Votes, lock.NewKeyedMutex(), logger),
		comments: NewCommentService(repos.Deals, repos.Comments, logger),
		admin:    NewAdminService(repos.Users, events, logger),
	}
	f.alice = f.user(t, "alice", entity.RoleUser)
	f.bob = f.user(t, "bob", entity.RoleUser)
	f.mod = f.user(t, "mod", entity.RoleModerator)
	f.root = f.user(t, "root", entity.RoleAdmin)
	return f
}

func (f *fixture) user(t *testing.T, name string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Username: name, Email: name + "@example.com", Password: "x", Role: role}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u
}

func price(v float64) *float64 { return &v }

func (f *fixture) deal(t *testing.T, author *entity.User, title, description string) *entity.Deal {
	t.Helper()
	d, err := f.deals.Create(context.Background(), author, CreateDealInput{
		Title:       title,
		Description: description,
		Category:    "High-Tech",
		Price:       price(99),
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) approved(t *testing.T, author *entity.User, title, description string) *entity.Deal {
	t.Helper()
	d := f.deal(t, author, title, description)
	d, err := f.deals.Moderate(context.Background(), d.ID, f.mod, entity.DealApproved)
	require.NoError(t, err)
	return d
}

func requireKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T: %v", err, err)
	require.Equal(t, kind, ae.Kind, ae.Message)
}
