package repositories

import (
	"context"
	"fmt"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// GenerateInvoiceNumber generates a unique invoice number
func (r *InvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", nextNum), nil
}

const invoiceColumns = `id, invoice_number, customer_id, estimate_id, tax_rate_id, discount_rate_id,
	po_number, sales_rep, status, due_date, notes, subtotal, tax_amount, discount_amount, total,
	amount_due, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.EstimateID,
		&inv.TaxRateID, &inv.DiscountRateID, &inv.PONumber, &inv.SalesRep, &inv.Status,
		&inv.DueDate, &inv.Notes, &inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount,
		&inv.Total, &inv.AmountDue, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create creates a new invoice with items
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if invoice.InvoiceNumber == "" {
		number, err := r.GenerateInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, customer_id, estimate_id, tax_rate_id, discount_rate_id,
		   po_number, sales_rep, status, due_date, notes, subtotal, tax_amount, discount_amount,
		   total, amount_due)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at, updated_at`,
		invoice.InvoiceNumber, invoice.CustomerID, invoice.EstimateID,
		invoice.TaxRateID, invoice.DiscountRateID, invoice.PONumber, invoice.SalesRep,
		invoice.Status, invoice.DueDate, invoice.Notes, invoice.Subtotal,
		invoice.TaxAmount, invoice.DiscountAmount, invoice.Total, invoice.AmountDue,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertLineItems(ctx, tx, models.DocumentTypeInvoice, invoice.ID, invoice.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get retrieves an invoice by ID with items
func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := scanInvoice(r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	items, err := getLineItems(ctx, r.DB, models.DocumentTypeInvoice, id)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return invoice, nil
}

// List returns all invoices, optionally filtered by status
func (r *InvoiceRepository) List(ctx context.Context, status string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// GetByCustomer returns all invoices for a customer
func (r *InvoiceRepository) GetByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
		 WHERE customer_id = $1 ORDER BY created_at DESC`, customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// Update replaces an invoice's editable fields and its line items
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE invoices SET customer_id = $1, tax_rate_id = $2, discount_rate_id = $3,
		   po_number = $4, sales_rep = $5, due_date = $6, notes = $7, subtotal = $8,
		   tax_amount = $9, discount_amount = $10, total = $11, amount_due = $12,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $13
		 RETURNING updated_at`,
		invoice.CustomerID, invoice.TaxRateID, invoice.DiscountRateID,
		invoice.PONumber, invoice.SalesRep, invoice.DueDate, invoice.Notes,
		invoice.Subtotal, invoice.TaxAmount, invoice.DiscountAmount,
		invoice.Total, invoice.AmountDue, invoice.ID,
	).Scan(&invoice.UpdatedAt)
	if err != nil {
		return err
	}

	if err := replaceLineItems(ctx, tx, models.DocumentTypeInvoice, invoice.ID, invoice.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateStatus sets the invoice status
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id,
	)
	return err
}

// Delete removes an invoice and its line items
func (r *InvoiceRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM line_items WHERE document_type = $1 AND document_id = $2`,
		models.DocumentTypeInvoice, id)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
