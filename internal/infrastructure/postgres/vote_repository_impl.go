package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

// VoteRepository writes the vote row and the deal's temperature in one
// transaction. The temperature is incremented in place, never read-modify-written.
type VoteRepository struct {
	pool *pgxpool.Pool
}

func NewVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool}
}

func adjustTemperature(ctx context.Context, tx pgx.Tx, dealID string, delta int) error {
	res, err := tx.Exec(ctx, `UPDATE deals SET temperature = temperature + $1 WHERE id = $2`, delta, dealID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VoteRepository) Get(ctx context.Context, dealID, userID string) (*entity.Vote, error) {
	v := &entity.Vote{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, type, user_id, deal_id, created_at
		FROM votes
		WHERE deal_id = $1 AND user_id = $2
	`, dealID, userID).Scan(&v.ID, &v.Type, &v.UserID, &v.DealID, &v.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return v, nil
}

func (r *VoteRepository) Create(ctx context.Context, v *entity.Vote, delta int) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO votes (type, user_id, deal_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, v.Type, v.UserID, v.DealID).Scan(&v.ID, &v.CreatedAt)
		if err != nil {
			return translate(err)
		}
		return adjustTemperature(ctx, tx, v.DealID, delta)
	})
}

func (r *VoteRepository) ChangeType(ctx context.Context, v *entity.Vote, delta int) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `UPDATE votes SET type = $1 WHERE id = $2`, v.Type, v.ID)
		if err != nil {
			return translate(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return adjustTemperature(ctx, tx, v.DealID, delta)
	})
}

func (r *VoteRepository) Delete(ctx context.Context, v *entity.Vote, delta int) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, v.ID)
		if err != nil {
			return translate(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return adjustTemperature(ctx, tx, v.DealID, delta)
	})
}

func (r *VoteRepository) Tally(ctx context.Context, dealID string) (entity.VoteTally, error) {
	var t entity.VoteTally
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE type = 'hot'),
		       count(*) FILTER (WHERE type = 'cold')
		FROM votes
		WHERE deal_id = $1
	`, dealID).Scan(&t.Hot, &t.Cold)
	if err != nil {
		return entity.VoteTally{}, translate(err)
	}
	t.Temperature = t.Hot - t.Cold
	return t, nil
}

var _ repository.VoteRepository = (*VoteRepository)(nil)
