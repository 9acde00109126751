package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, display_name, contact_name, email, phone,
	billing_line1, billing_line2, billing_city, billing_state, billing_zip,
	shipping_line1, shipping_line2, shipping_city, shipping_state, shipping_zip,
	account_number, notes, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.DisplayName, &c.ContactName, &c.Email, &c.Phone,
		&c.Billing.Line1, &c.Billing.Line2, &c.Billing.City, &c.Billing.State, &c.Billing.Zip,
		&c.Shipping.Line1, &c.Shipping.Line2, &c.Shipping.City, &c.Shipping.State, &c.Shipping.Zip,
		&c.AccountNumber, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(display_name, contact_name, email, phone,
		   billing_line1, billing_line2, billing_city, billing_state, billing_zip,
		   shipping_line1, shipping_line2, shipping_city, shipping_state, shipping_zip,
		   account_number, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, created_at, updated_at`,
		c.DisplayName, c.ContactName, c.Email, c.Phone,
		c.Billing.Line1, c.Billing.Line2, c.Billing.City, c.Billing.State, c.Billing.Zip,
		c.Shipping.Line1, c.Shipping.Line2, c.Shipping.City, c.Shipping.State, c.Shipping.Zip,
		c.AccountNumber, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Get retrieves a customer by ID
func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	return scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

// List returns all customers, optionally filtered by a search term
// matched against name, contact, email and phone
func (r *CustomerRepository) List(ctx context.Context, search string) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if search != "" {
		query += ` WHERE display_name ILIKE $1 OR contact_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY display_name`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// Update replaces all editable fields of a customer
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`UPDATE customers SET display_name = $1, contact_name = $2, email = $3, phone = $4,
		   billing_line1 = $5, billing_line2 = $6, billing_city = $7, billing_state = $8, billing_zip = $9,
		   shipping_line1 = $10, shipping_line2 = $11, shipping_city = $12, shipping_state = $13, shipping_zip = $14,
		   account_number = $15, notes = $16, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $17
		 RETURNING updated_at`,
		c.DisplayName, c.ContactName, c.Email, c.Phone,
		c.Billing.Line1, c.Billing.Line2, c.Billing.City, c.Billing.State, c.Billing.Zip,
		c.Shipping.Line1, c.Shipping.Line2, c.Shipping.City, c.Shipping.State, c.Shipping.Zip,
		c.AccountNumber, c.Notes, c.ID,
	).Scan(&c.UpdatedAt)
}

// Delete removes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}
