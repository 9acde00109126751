package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"garage-backend/internal/models"
	"garage-backend/internal/repositories"
	"garage-backend/internal/storage"
)

const maxAttachmentBytes = 20 << 20 // 20 MB

type AttachmentService struct {
	Repo  *repositories.AttachmentRepository
	Store *storage.ObjectStore
}

func NewAttachmentService(repo *repositories.AttachmentRepository, store *storage.ObjectStore) *AttachmentService {
	return &AttachmentService{Repo: repo, Store: store}
}

// Upload stores the file in object storage and records it against a document
func (s *AttachmentService) Upload(ctx context.Context, docType string, docID int, fileName, contentType string, size int64, body io.Reader, uploadedBy *int) (*models.Attachment, error) {
	if s.Store == nil {
		return nil, errors.New("object storage not configured")
	}
	if docType != models.DocumentTypeEstimate && docType != models.DocumentTypeInvoice {
		return nil, fmt.Errorf("unknown document type %q", docType)
	}
	if fileName == "" {
		return nil, errors.New("file name is required")
	}
	if size > maxAttachmentBytes {
		return nil, fmt.Errorf("attachment exceeds %d MB limit", maxAttachmentBytes>>20)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := s.Store.Put(ctx, "attachments/"+docType, fileName, contentType, body)
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		DocumentType: docType,
		DocumentID:   docID,
		FileName:     fileName,
		ContentType:  contentType,
		SizeBytes:    size,
		ObjectKey:    key,
		UploadedBy:   uploadedBy,
	}

	if err := s.Repo.Create(ctx, attachment); err != nil {
		// Orphaned object; best effort cleanup
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			log.Printf("[Attachment] Failed to clean up orphaned object %s: %v", key, delErr)
		}
		return nil, err
	}
	return attachment, nil
}

// List returns all attachments for one document
func (s *AttachmentService) List(ctx context.Context, docType string, docID int) ([]*models.Attachment, error) {
	return s.Repo.ListByDocument(ctx, docType, docID)
}

// Download streams an attachment's content. The caller must close the reader.
func (s *AttachmentService) Download(ctx context.Context, id int) (*models.Attachment, io.ReadCloser, error) {
	if s.Store == nil {
		return nil, nil, errors.New("object storage not configured")
	}
	attachment, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	body, _, err := s.Store.Get(ctx, attachment.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return attachment, body, nil
}

// Delete removes the record and the stored object
func (s *AttachmentService) Delete(ctx context.Context, id int) error {
	attachment, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Store != nil {
		if err := s.Store.Delete(ctx, attachment.ObjectKey); err != nil {
			log.Printf("[Attachment] Record deleted but object %s removal failed: %v", attachment.ObjectKey, err)
		}
	}
	return nil
}
