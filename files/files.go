// Package files is the upload boundary: it validates uploaded files,
// extracts plain text, and produces the document records the assembler
// injects into provider calls.
package files

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/google/uuid"
)

// MaxUploadBytes is the upload size ceiling.
const MaxUploadBytes = 10 << 20

// wordsPerPage approximates page counts for formats without page structure.
const wordsPerPage = 500

// ErrorCode identifies a validation failure in API responses.
type ErrorCode string

const (
	CodeFileTooLarge    ErrorCode = "file_too_large"
	CodeEmptyFile       ErrorCode = "empty_file"
	CodeUnsupportedType ErrorCode = "unsupported_type"
)

// ValidationError is a rejected upload with a machine-readable code.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("files: %s: %s", e.Code, e.Message)
}

// mimeTypes maps accepted extensions to the mime type recorded on the
// document.
var mimeTypes = map[string]string{
	".pdf": "application/pdf",
	".txt": "text/plain",
	".csv": "text/csv",
	".md":  "text/markdown",
}

// Validate checks an upload's name and size against the accepted formats.
func Validate(name string, size int64) error {
	if size == 0 {
		return &ValidationError{Code: CodeEmptyFile, Message: "uploaded file is empty"}
	}
	if size > MaxUploadBytes {
		return &ValidationError{
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("file exceeds the %d MB limit", MaxUploadBytes>>20),
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := mimeTypes[ext]; !ok {
		return &ValidationError{
			Code:    CodeUnsupportedType,
			Message: fmt.Sprintf("unsupported file type %q; accepted: pdf, txt, csv, md", ext),
		}
	}
	return nil
}

// Extractor turns raw file bytes into text. PDF extraction plugs in here.
type Extractor interface {
	Extract(name string, data []byte) (text string, pages int, err error)
}

// Processor validates uploads and builds document records.
type Processor struct {
	pdf Extractor
}

// Option configures a [Processor].
type Option func(*Processor)

// WithPDFExtractor installs a PDF text extractor. Without one, PDF uploads
// are accepted but stay in the pending state and are never injected.
func WithPDFExtractor(e Extractor) Option {
	return func(p *Processor) { p.pdf = e }
}

// NewProcessor creates a [Processor].
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process validates the upload and returns a document record ready for
// persistence. Plain-text formats are extracted inline; PDFs go through the
// configured extractor.
func (p *Processor) Process(sessionID, name string, data []byte) (*zeno.Document, error) {
	if err := Validate(name, int64(len(data))); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(name))
	doc := &zeno.Document{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		OriginalName: filepath.Base(name),
		MimeType:     mimeTypes[ext],
		SizeBytes:    int64(len(data)),
		UploadedAt:   time.Now().UTC(),
	}

	if ext == ".pdf" {
		if p.pdf == nil {
			doc.Status = zeno.DocumentPending
			return doc, nil
		}
		text, pages, err := p.pdf.Extract(name, data)
		if err != nil {
			doc.Status = zeno.DocumentFailed
			return doc, nil
		}
		doc.Text = text
		doc.WordCount = countWords(text)
		doc.PageCount = pages
		doc.Status = zeno.DocumentReady
		return doc, nil
	}

	text := normalizeText(string(data))
	doc.Text = text
	doc.WordCount = countWords(text)
	doc.PageCount = estimatePages(doc.WordCount)
	doc.Status = zeno.DocumentReady
	return doc, nil
}

// normalizeText unifies line endings so downstream truncation budgets are
// stable across platforms.
func normalizeText(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

func estimatePages(words int) int {
	pages := (words + wordsPerPage - 1) / wordsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}
