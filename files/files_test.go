package files_test

import (
	"errors"
	"strings"
	"testing"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/Dushyant-2004/Zeno/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		size     int64
		wantCode files.ErrorCode
	}{
		{"accepts txt", "notes.txt", 100, ""},
		{"accepts pdf", "report.pdf", 100, ""},
		{"accepts csv", "data.csv", 100, ""},
		{"accepts md", "README.md", 100, ""},
		{"accepts uppercase extension", "NOTES.TXT", 100, ""},
		{"rejects empty", "notes.txt", 0, files.CodeEmptyFile},
		{"rejects oversized", "notes.txt", files.MaxUploadBytes + 1, files.CodeFileTooLarge},
		{"accepts exactly max size", "notes.txt", files.MaxUploadBytes, ""},
		{"rejects exe", "virus.exe", 100, files.CodeUnsupportedType},
		{"rejects no extension", "noext", 100, files.CodeUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := files.Validate(tt.fileName, tt.size)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var verr *files.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestProcessor_PlainText(t *testing.T) {
	t.Parallel()

	p := files.NewProcessor()
	doc, err := p.Process("s1", "notes.txt", []byte("one two three\r\nfour five"))
	require.NoError(t, err)

	assert.Equal(t, "s1", doc.SessionID)
	assert.Equal(t, "notes.txt", doc.OriginalName)
	assert.Equal(t, "text/plain", doc.MimeType)
	assert.Equal(t, int64(24), doc.SizeBytes)
	assert.Equal(t, "one two three\nfour five", doc.Text, "CRLF is normalized")
	assert.Equal(t, 5, doc.WordCount)
	assert.Equal(t, 1, doc.PageCount)
	assert.Equal(t, zeno.DocumentReady, doc.Status)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.UploadedAt.IsZero())
}

func TestProcessor_PageEstimate(t *testing.T) {
	t.Parallel()

	p := files.NewProcessor()
	doc, err := p.Process("s1", "big.txt", []byte(strings.Repeat("word ", 1200)))
	require.NoError(t, err)
	assert.Equal(t, 1200, doc.WordCount)
	assert.Equal(t, 3, doc.PageCount, "500 words per page, rounded up")
}

func TestProcessor_PDFWithoutExtractorIsPending(t *testing.T) {
	t.Parallel()

	p := files.NewProcessor()
	doc, err := p.Process("s1", "report.pdf", []byte("%PDF-1.7 ..."))
	require.NoError(t, err)
	assert.Equal(t, zeno.DocumentPending, doc.Status)
	assert.Empty(t, doc.Text)
	assert.Zero(t, doc.WordCount)
}

type stubExtractor struct {
	text  string
	pages int
	err   error
}

func (s *stubExtractor) Extract(name string, data []byte) (string, int, error) {
	return s.text, s.pages, s.err
}

func TestProcessor_PDFWithExtractor(t *testing.T) {
	t.Parallel()

	p := files.NewProcessor(files.WithPDFExtractor(&stubExtractor{
		text:  "extracted pdf body text",
		pages: 4,
	}))
	doc, err := p.Process("s1", "report.pdf", []byte("%PDF-1.7 ..."))
	require.NoError(t, err)
	assert.Equal(t, zeno.DocumentReady, doc.Status)
	assert.Equal(t, "extracted pdf body text", doc.Text)
	assert.Equal(t, 4, doc.WordCount)
	assert.Equal(t, 4, doc.PageCount)
}

func TestProcessor_PDFExtractionFailure(t *testing.T) {
	t.Parallel()

	p := files.NewProcessor(files.WithPDFExtractor(&stubExtractor{
		err: errors.New("encrypted document"),
	}))
	doc, err := p.Process("s1", "report.pdf", []byte("%PDF-1.7 ..."))
	require.NoError(t, err, "extraction failure marks the document, not the upload")
	assert.Equal(t, zeno.DocumentFailed, doc.Status)
	assert.Empty(t, doc.Text)
}

func TestProcessor_BasenameOnly(t *testing.T) {
	t.Parallel()

	p := files.NewProcessor()
	doc, err := p.Process("s1", "../../etc/notes.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.OriginalName)
}
