package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// CreateTransaction records a newly created payment order
func (r *PaymentRepository) CreateTransaction(ctx context.Context, tx *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(razorpay_order_id, invoice_id, amount, status)
		 VALUES($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		tx.RazorpayOrderID, tx.InvoiceID, tx.Amount, tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

// GetByOrderID retrieves a transaction by the gateway order id
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	var tx models.OnlineTransaction
	err := r.DB.QueryRow(ctx,
		`SELECT id, razorpay_order_id, razorpay_payment_id, invoice_id, amount, status,
		        failure_reason, created_at, updated_at
		 FROM online_transactions WHERE razorpay_order_id = $1`, orderID,
	).Scan(&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID, &tx.InvoiceID, &tx.Amount,
		&tx.Status, &tx.FailureReason, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// MarkSuccess records a verified payment against the order
func (r *PaymentRepository) MarkSuccess(ctx context.Context, orderID, paymentID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET razorpay_payment_id = $1, status = $2,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE razorpay_order_id = $3`,
		paymentID, models.OnlineTxStatusSuccess, orderID,
	)
	return err
}

// MarkFailed records a failed payment attempt with the gateway reason
func (r *PaymentRepository) MarkFailed(ctx context.Context, orderID, reason string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status = $1, failure_reason = $2,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE razorpay_order_id = $3`,
		models.OnlineTxStatusFailed, reason, orderID,
	)
	return err
}

// ListByInvoice returns all payment attempts for an invoice
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.OnlineTransaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, razorpay_order_id, razorpay_payment_id, invoice_id, amount, status,
		        failure_reason, created_at, updated_at
		 FROM online_transactions WHERE invoice_id = $1 ORDER BY created_at DESC`, invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*models.OnlineTransaction
	for rows.Next() {
		var tx models.OnlineTransaction
		err := rows.Scan(&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID, &tx.InvoiceID,
			&tx.Amount, &tx.Status, &tx.FailureReason, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}
