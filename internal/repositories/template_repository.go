package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TemplateRepository struct {
	DB *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

const templateColumns = `id, name, logo_key, accent_color, layout, is_default,
	show_contact_name, show_customer_email, show_customer_phone, show_billing_address,
	show_shipping_address, show_account_number,
	show_po_number, show_sales_rep, show_document_date, show_due_date,
	show_item_quantity, show_item_unit_price, show_item_total,
	show_subtotal, show_tax, show_discount, show_amount_paid, show_amount_due,
	created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.Template, error) {
	var t models.Template
	err := row.Scan(&t.ID, &t.Name, &t.LogoKey, &t.AccentColor, &t.Layout, &t.IsDefault,
		&t.Customer.ContactName, &t.Customer.Email, &t.Customer.Phone, &t.Customer.BillingAddress,
		&t.Customer.ShippingAddress, &t.Customer.AccountNumber,
		&t.Header.PONumber, &t.Header.SalesRep, &t.Header.DocumentDate, &t.Header.DueDate,
		&t.Items.Quantity, &t.Items.UnitPrice, &t.Items.RowTotal,
		&t.Calculation.Subtotal, &t.Calculation.Tax, &t.Calculation.Discount,
		&t.Calculation.AmountPaid, &t.Calculation.AmountDue,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new template
func (r *TemplateRepository) Create(ctx context.Context, t *models.Template) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO templates(name, logo_key, accent_color, layout, is_default,
		   show_contact_name, show_customer_email, show_customer_phone, show_billing_address,
		   show_shipping_address, show_account_number,
		   show_po_number, show_sales_rep, show_document_date, show_due_date,
		   show_item_quantity, show_item_unit_price, show_item_total,
		   show_subtotal, show_tax, show_discount, show_amount_paid, show_amount_due)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.LogoKey, t.AccentColor, t.Layout, t.IsDefault,
		t.Customer.ContactName, t.Customer.Email, t.Customer.Phone, t.Customer.BillingAddress,
		t.Customer.ShippingAddress, t.Customer.AccountNumber,
		t.Header.PONumber, t.Header.SalesRep, t.Header.DocumentDate, t.Header.DueDate,
		t.Items.Quantity, t.Items.UnitPrice, t.Items.RowTotal,
		t.Calculation.Subtotal, t.Calculation.Tax, t.Calculation.Discount,
		t.Calculation.AmountPaid, t.Calculation.AmountDue,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Get retrieves a template by ID
func (r *TemplateRepository) Get(ctx context.Context, id int) (*models.Template, error) {
	return scanTemplate(r.DB.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
}

// GetDefault retrieves the default template
func (r *TemplateRepository) GetDefault(ctx context.Context) (*models.Template, error) {
	return scanTemplate(r.DB.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE is_default = TRUE LIMIT 1`))
}

// List returns all templates
func (r *TemplateRepository) List(ctx context.Context) ([]*models.Template, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// Update replaces all editable fields of a template
func (r *TemplateRepository) Update(ctx context.Context, t *models.Template) error {
	return r.DB.QueryRow(ctx,
		`UPDATE templates SET name = $1, logo_key = $2, accent_color = $3, layout = $4,
		   show_contact_name = $5, show_customer_email = $6, show_customer_phone = $7,
		   show_billing_address = $8, show_shipping_address = $9, show_account_number = $10,
		   show_po_number = $11, show_sales_rep = $12, show_document_date = $13, show_due_date = $14,
		   show_item_quantity = $15, show_item_unit_price = $16, show_item_total = $17,
		   show_subtotal = $18, show_tax = $19, show_discount = $20,
		   show_amount_paid = $21, show_amount_due = $22, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $23
		 RETURNING updated_at`,
		t.Name, t.LogoKey, t.AccentColor, t.Layout,
		t.Customer.ContactName, t.Customer.Email, t.Customer.Phone,
		t.Customer.BillingAddress, t.Customer.ShippingAddress, t.Customer.AccountNumber,
		t.Header.PONumber, t.Header.SalesRep, t.Header.DocumentDate, t.Header.DueDate,
		t.Items.Quantity, t.Items.UnitPrice, t.Items.RowTotal,
		t.Calculation.Subtotal, t.Calculation.Tax, t.Calculation.Discount,
		t.Calculation.AmountPaid, t.Calculation.AmountDue, t.ID,
	).Scan(&t.UpdatedAt)
}

// SetDefault marks one template as the default, clearing the flag on
// every other template in the same transaction
func (r *TemplateRepository) SetDefault(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `UPDATE templates SET is_default = FALSE WHERE is_default = TRUE`)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx,
		`UPDATE templates SET is_default = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes a template. The default template cannot be deleted.
func (r *TemplateRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM templates WHERE id = $1 AND is_default = FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
