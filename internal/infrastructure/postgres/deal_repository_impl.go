package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

type DealRepository struct {
	pool *pgxpool.Pool
}

func NewDealRepository(pool *pgxpool.Pool) *DealRepository {
	return &DealRepository{pool: pool}
}

const dealSelect = `
	SELECT d.id, d.title, d.description, d.price, d.original_price, d.url, d.category,
	       d.status, d.temperature, d.author_id, d.created_at,
	       u.username, u.email, u.role
	FROM deals d
	JOIN users u ON u.id = d.author_id`

func scanDeal(row rowScanner) (*entity.Deal, error) {
	d := &entity.Deal{Author: &entity.UserSummary{}}
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Price, &d.OriginalPrice, &d.URL, &d.Category,
		&d.Status, &d.Temperature, &d.AuthorID, &d.CreatedAt,
		&d.Author.Username, &d.Author.Email, &d.Author.Role)
	if err != nil {
		return nil, translate(err)
	}
	d.Author.ID = d.AuthorID
	return d, nil
}

func (r *DealRepository) Create(ctx context.Context, d *entity.Deal) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO deals (id, title, description, price, original_price, url, category, status, temperature, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`, d.ID, d.Title, d.Description, d.Price, d.OriginalPrice, d.URL, d.Category, d.Status, d.Temperature, d.AuthorID)

	return translate(row.Scan(&d.CreatedAt))
}

func (r *DealRepository) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	return scanDeal(r.pool.QueryRow(ctx, dealSelect+` WHERE d.id = $1`, id))
}

func (r *DealRepository) Update(ctx context.Context, d *entity.Deal) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE deals
		SET title = $1, description = $2, price = $3, original_price = $4, url = $5, category = $6, status = $7
		WHERE id = $8
		RETURNING temperature
	`, d.Title, d.Description, d.Price, d.OriginalPrice, d.URL, d.Category, d.Status, d.ID)

	return translate(row.Scan(&d.Temperature))
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	// comments and votes go with the deal through ON DELETE CASCADE
	res, err := r.pool.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func dealWhere(f repository.DealFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("d.status = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+escapeLike(f.Query)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(d.title ILIKE $%d OR d.description ILIKE $%d)", n, n))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *DealRepository) List(ctx context.Context, f repository.DealFilter, p repository.Page) ([]entity.Deal, int, error) {
	where, args := dealWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM deals d`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limitArg(p), p.Offset())
	q := dealSelect + where + fmt.Sprintf(" ORDER BY d.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	deals := make([]entity.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, 0, err
		}
		deals = append(deals, *d)
	}
	return deals, total, translate(rows.Err())
}

var _ repository.DealRepository = (*DealRepository)(nil)
