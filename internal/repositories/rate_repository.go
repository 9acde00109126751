package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RateRepository stores the percentage and flat-amount catalogs. All
// four kinds (tax, discount, labor, other_charge) share one table
// discriminated by kind.
type RateRepository struct {
	DB *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) *RateRepository {
	return &RateRepository{DB: db}
}

// Create inserts a new rate
func (r *RateRepository) Create(ctx context.Context, rate *models.Rate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO rates(kind, name, rate)
		 VALUES($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		rate.Kind, rate.Name, rate.Rate,
	).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
}

// Get retrieves a rate by ID
func (r *RateRepository) Get(ctx context.Context, id int) (*models.Rate, error) {
	var rate models.Rate
	err := r.DB.QueryRow(ctx,
		`SELECT id, kind, name, rate, created_at, updated_at
		 FROM rates WHERE id = $1`, id,
	).Scan(&rate.ID, &rate.Kind, &rate.Name, &rate.Rate, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// GetOfKind retrieves a rate by ID, checking it has the expected kind
func (r *RateRepository) GetOfKind(ctx context.Context, id int, kind string) (*models.Rate, error) {
	var rate models.Rate
	err := r.DB.QueryRow(ctx,
		`SELECT id, kind, name, rate, created_at, updated_at
		 FROM rates WHERE id = $1 AND kind = $2`, id, kind,
	).Scan(&rate.ID, &rate.Kind, &rate.Name, &rate.Rate, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListByKind returns all rates of one kind
func (r *RateRepository) ListByKind(ctx context.Context, kind string) ([]*models.Rate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, kind, name, rate, created_at, updated_at
		 FROM rates WHERE kind = $1 ORDER BY name`, kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*models.Rate
	for rows.Next() {
		var rate models.Rate
		err := rows.Scan(&rate.ID, &rate.Kind, &rate.Name, &rate.Rate, &rate.CreatedAt, &rate.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rates = append(rates, &rate)
	}
	return rates, nil
}

// Update replaces the name and rate value
func (r *RateRepository) Update(ctx context.Context, rate *models.Rate) error {
	return r.DB.QueryRow(ctx,
		`UPDATE rates SET name = $1, rate = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING updated_at`,
		rate.Name, rate.Rate, rate.ID,
	).Scan(&rate.UpdatedAt)
}

// Delete removes a rate
func (r *RateRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM rates WHERE id = $1`, id)
	return err
}
