package repositories

import (
	"context"
	"fmt"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EstimateRepository struct {
	DB *pgxpool.Pool
}

func NewEstimateRepository(db *pgxpool.Pool) *EstimateRepository {
	return &EstimateRepository{DB: db}
}

// GenerateEstimateNumber generates a unique estimate number
func (r *EstimateRepository) GenerateEstimateNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('estimate_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next estimate number: %w", err)
	}
	return fmt.Sprintf("EST-%06d", nextNum), nil
}

const estimateColumns = `id, estimate_number, customer_id, tax_rate_id, discount_rate_id,
	po_number, sales_rep, status, notes, subtotal, tax_amount, discount_amount, total,
	invoice_id, created_at, updated_at`

func scanEstimate(row interface{ Scan(...any) error }) (*models.Estimate, error) {
	var e models.Estimate
	err := row.Scan(&e.ID, &e.EstimateNumber, &e.CustomerID, &e.TaxRateID, &e.DiscountRateID,
		&e.PONumber, &e.SalesRep, &e.Status, &e.Notes, &e.Subtotal, &e.TaxAmount,
		&e.DiscountAmount, &e.Total, &e.InvoiceID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create creates a new estimate with items
func (r *EstimateRepository) Create(ctx context.Context, estimate *models.Estimate) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if estimate.EstimateNumber == "" {
		number, err := r.GenerateEstimateNumber(ctx)
		if err != nil {
			return err
		}
		estimate.EstimateNumber = number
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO estimates(estimate_number, customer_id, tax_rate_id, discount_rate_id,
		   po_number, sales_rep, status, notes, subtotal, tax_amount, discount_amount, total)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		estimate.EstimateNumber, estimate.CustomerID, estimate.TaxRateID, estimate.DiscountRateID,
		estimate.PONumber, estimate.SalesRep, estimate.Status, estimate.Notes,
		estimate.Subtotal, estimate.TaxAmount, estimate.DiscountAmount, estimate.Total,
	).Scan(&estimate.ID, &estimate.CreatedAt, &estimate.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertLineItems(ctx, tx, models.DocumentTypeEstimate, estimate.ID, estimate.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get retrieves an estimate by ID with items
func (r *EstimateRepository) Get(ctx context.Context, id int) (*models.Estimate, error) {
	estimate, err := scanEstimate(r.DB.QueryRow(ctx,
		`SELECT `+estimateColumns+` FROM estimates WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	items, err := getLineItems(ctx, r.DB, models.DocumentTypeEstimate, id)
	if err != nil {
		return nil, err
	}
	estimate.Items = items
	return estimate, nil
}

// List returns all estimates, optionally filtered by status
func (r *EstimateRepository) List(ctx context.Context, status string) ([]*models.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates`
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

	var estimates []*models.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	return estimates, nil
}

// GetByCustomer returns all estimates for a customer
func (r *EstimateRepository) GetByCustomer(ctx context.Context, customerID int) ([]*models.Estimate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+estimateColumns+` FROM estimates
		 WHERE customer_id = $1 ORDER BY created_at DESC`, customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estimates []*models.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	return estimates, nil
}

// Update replaces an estimate's editable fields and its line items
func (r *EstimateRepository) Update(ctx context.Context, estimate *models.Estimate) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE estimates SET customer_id = $1, tax_rate_id = $2, discount_rate_id = $3,
		   po_number = $4, sales_rep = $5, notes = $6, subtotal = $7, tax_amount = $8,
		   discount_amount = $9, total = $10, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $11
		 RETURNING updated_at`,
		estimate.CustomerID, estimate.TaxRateID, estimate.DiscountRateID,
		estimate.PONumber, estimate.SalesRep, estimate.Notes,
		estimate.Subtotal, estimate.TaxAmount, estimate.DiscountAmount, estimate.Total,
		estimate.ID,
	).Scan(&estimate.UpdatedAt)
	if err != nil {
		return err
	}

	if err := replaceLineItems(ctx, tx, models.DocumentTypeEstimate, estimate.ID, estimate.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Accept marks an estimate accepted and creates its linked draft
// invoice in one transaction; a failure on either write leaves
// neither behind
func (r *EstimateRepository) Accept(ctx context.Context, estimateID int, invoice *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if invoice.InvoiceNumber == "" {
		var nextNum int
		if err := tx.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum); err != nil {
			return fmt.Errorf("failed to get next invoice number: %w", err)
		}
		invoice.InvoiceNumber = fmt.Sprintf("INV-%06d", nextNum)
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

	_, err = tx.Exec(ctx,
		`UPDATE estimates SET status = $1, invoice_id = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		models.EstimateStatusAccepted, invoice.ID, estimateID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateStatus sets the estimate status and, on acceptance, the
// linked invoice id
func (r *EstimateRepository) UpdateStatus(ctx context.Context, id int, status string, invoiceID *int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE estimates SET status = $1, invoice_id = COALESCE($2, invoice_id),
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		status, invoiceID, id,
	)
	return err
}

// Delete removes an estimate and its line items
func (r *EstimateRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM line_items WHERE document_type = $1 AND document_id = $2`,
		models.DocumentTypeEstimate, id)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
