package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

// NewRepositories builds the postgres-backed repository set.
func NewRepositories(pool *pgxpool.Pool) repository.Set {
	return repository.Set{
		Users:    NewUserRepository(pool),
		Deals:    NewDealRepository(pool),
		Comments: NewCommentRepository(pool),
		Votes:    NewVoteRepository(pool),
	}
}
