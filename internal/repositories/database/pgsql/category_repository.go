package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	db *pgxpool.Pool
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{db: db}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
        INSERT INTO categories (category_id, user_id, name, is_default, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.IsDefault,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("category %q already exists: %w", m.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, user_id, name, is_default, created_at, updated_at
		FROM categories
		WHERE category_id = $1;
	`
	var m models.Category
	err := r.db.QueryRow(ctx, query, categoryID).Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.IsDefault,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	query := `
		SELECT category_id, user_id, name, is_default, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND name = $2;
	`
	var m models.Category
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.IsDefault,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by name %q: %w", name, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) ListCategoriesForUser(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
        SELECT category_id, user_id, name, is_default, created_at, updated_at
        FROM categories
        WHERE is_default = TRUE OR user_id = $1
        ORDER BY is_default DESC, name ASC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCats := []models.Category{}
	for rows.Next() {
		var m models.Category
		err := rows.Scan(
			&m.CategoryID,
			&m.UserID,
			&m.Name,
			&m.IsDefault,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		modelCats = append(modelCats, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}

	return mapping.ToDomainCategorySlice(modelCats), nil
}
