package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	DB *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{DB: db}
}

// Create inserts a new catalog item
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO items(name, description, category, unit_price, taxable)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Category, item.UnitPrice, item.Taxable,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// Get retrieves a catalog item by ID
func (r *ItemRepository) Get(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, description, category, unit_price, taxable, created_at, updated_at
		 FROM items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Category,
		&item.UnitPrice, &item.Taxable, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns catalog items, optionally filtered by category and a
// search term matched against name and description
func (r *ItemRepository) List(ctx context.Context, category, search string) ([]*models.Item, error) {
	query := `SELECT id, name, description, category, unit_price, taxable, created_at, updated_at
	          FROM items WHERE 1=1`
	args := []any{}
	if category != "" {
		args = append(args, category)
		query += ` AND category = $1`
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		if len(args) == 1 {
			query += ` AND (name ILIKE $1 OR description ILIKE $1)`
		} else {
			query += ` AND (name ILIKE $2 OR description ILIKE $2)`
		}
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var item models.Item
		err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Category,
			&item.UnitPrice, &item.Taxable, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

// Update replaces all editable fields of a catalog item
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.DB.QueryRow(ctx,
		`UPDATE items SET name = $1, description = $2, category = $3, unit_price = $4,
		   taxable = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6
		 RETURNING updated_at`,
		item.Name, item.Description, item.Category, item.UnitPrice, item.Taxable, item.ID,
	).Scan(&item.UpdatedAt)
}

// Delete removes a catalog item
func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}
