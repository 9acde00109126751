package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SendLogRepository struct {
	DB *pgxpool.Pool
}

func NewSendLogRepository(db *pgxpool.Pool) *SendLogRepository {
	return &SendLogRepository{DB: db}
}

// Create records an outbound dispatch
func (r *SendLogRepository) Create(ctx context.Context, l *models.SendLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO send_logs(document_type, document_id, recipient, sent_by)
		 VALUES($1, $2, $3, $4)
		 RETURNING id, sent_at`,
		l.DocumentType, l.DocumentID, l.Recipient, l.SentBy,
	).Scan(&l.ID, &l.SentAt)
}

// ListByDocument returns the dispatch history for one document
func (r *SendLogRepository) ListByDocument(ctx context.Context, docType string, docID int) ([]*models.SendLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, document_type, document_id, recipient, sent_by, sent_at
		 FROM send_logs WHERE document_type = $1 AND document_id = $2
		 ORDER BY sent_at DESC`, docType, docID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.SendLog
	for rows.Next() {
		var l models.SendLog
		err := rows.Scan(&l.ID, &l.DocumentType, &l.DocumentID, &l.Recipient, &l.SentBy, &l.SentAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, nil
}
