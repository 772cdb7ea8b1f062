package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Document kinds
const (
	KindProfile = "profile"
	KindJob     = "job"
)

// Metadata describes where a loaded document came from
type Metadata struct {
	Kind      string `json:"kind"`
	Source    string `json:"source,omitempty"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
	// AssignedID is true when the document had no id and one was generated
	AssignedID bool `json:"assigned_id"`
}

// NewMetadata creates metadata for raw document content
func NewMetadata(kind, source string, content []byte, now time.Time) *Metadata {
	return &Metadata{
		Kind:      kind,
		Source:    source,
		Timestamp: now.UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
