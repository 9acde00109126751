package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AttachmentRepository struct {
	DB *pgxpool.Pool
}

func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

// Create records an uploaded attachment
func (r *AttachmentRepository) Create(ctx context.Context, a *models.Attachment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO attachments(document_type, document_id, file_name, content_type,
		   size_bytes, object_key, uploaded_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		a.DocumentType, a.DocumentID, a.FileName, a.ContentType,
		a.SizeBytes, a.ObjectKey, a.UploadedBy,
	).Scan(&a.ID, &a.CreatedAt)
}

// Get retrieves an attachment by ID
func (r *AttachmentRepository) Get(ctx context.Context, id int) (*models.Attachment, error) {
	var a models.Attachment
	err := r.DB.QueryRow(ctx,
		`SELECT id, document_type, document_id, file_name, content_type, size_bytes,
		        object_key, uploaded_by, created_at
		 FROM attachments WHERE id = $1`, id,
	).Scan(&a.ID, &a.DocumentType, &a.DocumentID, &a.FileName, &a.ContentType,
		&a.SizeBytes, &a.ObjectKey, &a.UploadedBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByDocument returns all attachments for one document
func (r *AttachmentRepository) ListByDocument(ctx context.Context, docType string, docID int) ([]*models.Attachment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, document_type, document_id, file_name, content_type, size_bytes,
		        object_key, uploaded_by, created_at
		 FROM attachments WHERE document_type = $1 AND document_id = $2
		 ORDER BY created_at`, docType, docID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.Attachment
	for rows.Next() {
		var a models.Attachment
		err := rows.Scan(&a.ID, &a.DocumentType, &a.DocumentID, &a.FileName, &a.ContentType,
			&a.SizeBytes, &a.ObjectKey, &a.UploadedBy, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, &a)
	}
	return attachments, nil
}

// Delete removes an attachment record
func (r *AttachmentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
