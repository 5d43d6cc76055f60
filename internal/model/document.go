package model

import (
	"encoding/json"
	"time"
)

// DocumentMetadata is the record assembled for every uploaded document.
// It is created once per upload and never mutated afterwards.
type DocumentMetadata struct {
	DocumentID      string    `json:"document_id"`
	FileName        string    `json:"file_name"`
	UploadTimestamp time.Time `json:"upload_timestamp"`
	// OriginalFileHash is the sha256 hex digest of the extracted text that was
	// sent to entity extraction and generation.
	OriginalFileHash string `json:"original_file_hash"`
	// MetadataSummary is the generation output verbatim, including failure text.
	MetadataSummary   string          `json:"metadata_summary"`
	Outcome           string          `json:"outcome"`
	StructuredSummary json.RawMessage `json:"structured_summary,omitempty"`
	EntityCount       int             `json:"entity_count"`
}
