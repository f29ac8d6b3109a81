// Package document turns an uploaded PDF into ordered, overlapping text
// chunks ready for embedding.
package document

import "errors"

var (
	// ErrDocumentRead is returned when an input cannot be read as a PDF.
	ErrDocumentRead = errors.New("document could not be read")

	// ErrInvalidChunking is returned for a chunk size/overlap pair whose
	// window would never advance.
	ErrInvalidChunking = errors.New("invalid chunking parameters")
)

// Page is the extracted text of one PDF page. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// Chunk is a contiguous window of document text.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	// Page is the page on which the chunk starts.
	Page int `json:"page"`
	// Start and End are rune offsets into the concatenated page text.
	Start int `json:"start"`
	End   int `json:"end"`
}
