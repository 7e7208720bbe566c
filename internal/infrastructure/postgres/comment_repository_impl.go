package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.content, c.deal_id, c.author_id, c.created_at, u.username
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanComment(row rowScanner) (*entity.Comment, error) {
	c := &entity.Comment{Author: &entity.UserSummary{}}
	if err := row.Scan(&c.ID, &c.Content, &c.DealID, &c.AuthorID, &c.CreatedAt, &c.Author.Username); err != nil {
		return nil, translate(err)
	}
	c.Author.ID = c.AuthorID
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO comments (content, deal_id, author_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, author_id
		)
		SELECT i.id, i.created_at, u.username
		FROM inserted i
		JOIN users u ON u.id = i.author_id
	`, c.Content, c.DealID, c.AuthorID)

	c.Author = &entity.UserSummary{ID: c.AuthorID}
	return translate(row.Scan(&c.ID, &c.CreatedAt, &c.Author.Username))
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	res, err := r.pool.Exec(ctx, `UPDATE comments SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ListByDeal(ctx context.Context, dealID string) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+` WHERE c.deal_id = $1 ORDER BY c.created_at DESC`, dealID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	comments := make([]entity.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, translate(rows.Err())
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
