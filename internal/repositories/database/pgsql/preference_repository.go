package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/mapping"
)

type PgxPreferenceRepository struct {
	db *pgxpool.Pool
}

func newPgxPreferenceRepository(db *pgxpool.Pool) portsrepo.PreferenceRepositoryFacade {
	return &PgxPreferenceRepository{db: db}
}

var _ portsrepo.PreferenceRepositoryFacade = (*PgxPreferenceRepository)(nil)

// UpsertPreference relies on the user_id unique constraint: each user has at
// most one preference row.
func (r *PgxPreferenceRepository) UpsertPreference(ctx context.Context, pref domain.UserPreference) error {
	m := mapping.ToModelUserPreference(pref)
	query := `
        INSERT INTO user_preferences (preference_id, user_id, currency_code, timezone, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id) DO UPDATE SET
            currency_code = EXCLUDED.currency_code,
            timezone = EXCLUDED.timezone,
            updated_at = EXCLUDED.updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		m.PreferenceID,
		m.UserID,
		m.CurrencyCode,
		m.Timezone,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preference for user %s: %w", m.UserID, err)
	}
	return nil
}

func (r *PgxPreferenceRepository) FindPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error) {
	query := `
		SELECT preference_id, user_id, currency_code, timezone, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1;
	`
	var m models.UserPreference
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&m.PreferenceID,
		&m.UserID,
		&m.CurrencyCode,
		&m.Timezone,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find preference for user %s: %w", userID, err)
	}
	d := mapping.ToDomainUserPreference(m)
	return &d, nil
}
