package zeno

import "time"

// DocumentStatus tracks a document through upload and text extraction.
type DocumentStatus string

const (
	DocumentPending DocumentStatus = "pending"
	DocumentReady   DocumentStatus = "ready"
	DocumentFailed  DocumentStatus = "failed"
)

// Document is the stored form of an uploaded file: the extracted text plus
// the metadata returned to the uploader. Only the Text of ready documents is
// ever injected into a provider call.
type Document struct {
	ID           string         `json:"fileId"`
	SessionID    string         `json:"sessionId"`
	OriginalName string         `json:"originalName"`
	MimeType     string         `json:"mimeType"`
	SizeBytes    int64          `json:"sizeBytes"`
	WordCount    int            `json:"wordCount"`
	PageCount    int            `json:"pageCount"`
	Status       DocumentStatus `json:"status"`
	Text         string         `json:"-"`
	UploadedAt   time.Time      `json:"uploadedAt"`
}
