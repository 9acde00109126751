package models

import "time"

// Attachment is an opaque file stored alongside a document
type Attachment struct {
	ID           int       `json:"id"`
	DocumentType string    `json:"document_type"`
	DocumentID   int       `json:"document_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	ObjectKey    string    `json:"object_key"`
	UploadedBy   *int      `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// SendLog records an outbound dispatch of a rendered document
type SendLog struct {
	ID           int       `json:"id"`
	DocumentType string    `json:"document_type"`
	DocumentID   int       `json:"document_id"`
	Recipient    string    `json:"recipient"`
	SentBy       *int      `json:"sent_by"`
	SentAt       time.Time `json:"sent_at"`
}

// SendDocumentRequest represents the request body for sending a document
type SendDocumentRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}
