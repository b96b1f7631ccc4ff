// Package store implements the user-keyed document store backing results,
// review ledger and statistics persistence. Documents are JSON objects; writes
// merge at the top level only, so updating a key replaces its nested value
// wholesale. The reconciler depends on that replace semantics.
package store

import (
	"encoding/json"
	"time"

	"github.com/architect/vocab-trainer/internal/common/database"
	"github.com/architect/vocab-trainer/internal/common/errors"
	"gorm.io/gorm"
)

// Collection names
const (
	CollectionResults     = "results"
	CollectionCompletions = "completions"
	CollectionReviews     = "reviews"
	CollectionStatistics  = "statistics"
)

// Document is one user's document within a collection
type Document struct {
	Collection string    `gorm:"primaryKey;size:64" json:"collection"`
	UserID     string    `gorm:"primaryKey;size:128;column:user_id" json:"user_id"`
	Data       []byte    `gorm:"type:text" json:"data"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AutoMigrate creates the documents table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Document{})
}

// Get retrieves a document as a map of top-level keys to raw JSON values.
// The second return value reports whether the document exists.
func Get(collection, userID string) (map[string]json.RawMessage, bool, error) {
	var doc Document
	result := database.DB.
		Where("collection = ? AND user_id = ?", collection, userID).
		First(&doc)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, errors.Internal("failed to fetch document", result.Error.Error())
	}

	fields := make(map[string]json.RawMessage)
	if len(doc.Data) > 0 {
		if err := json.Unmarshal(doc.Data, &fields); err != nil {
			return nil, false, errors.Internal("corrupt document", err.Error())
		}
	}

	return fields, true, nil
}

// Create stores a new document, replacing any existing one for the same key
func Create(collection, userID string, fields map[string]json.RawMessage) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return errors.Internal("failed to encode document", err.Error())
	}

	doc := Document{
		Collection: collection,
		UserID:     userID,
		Data:       data,
	}

	result := database.DB.Save(&doc)
	if result.Error != nil {
		return errors.Internal("failed to create document", result.Error.Error())
	}
	return nil
}

// MergeUpdate shallow-merges partial into the stored document: each top-level
// key in partial overwrites the stored value for that key entirely. Creates
// the document when absent. Read-modify-write without a transaction across
// devices; last writer wins.
func MergeUpdate(collection, userID string, partial map[string]json.RawMessage) error {
	existing, found, err := Get(collection, userID)
	if err != nil {
		return err
	}

	if !found {
		return Create(collection, userID, partial)
	}

	for key, value := range partial {
		existing[key] = value
	}

	return Create(collection, userID, existing)
}

// GetKey unmarshals a single top-level key of a document into out.
// Returns false when the document or the key is absent.
func GetKey(collection, userID, key string, out interface{}) (bool, error) {
	fields, found, err := Get(collection, userID)
	if err != nil || !found {
		return false, err
	}

	raw, ok := fields[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Internal("corrupt document field", err.Error())
	}
	return true, nil
}

// SetKey marshals value and merge-updates it under a single top-level key
func SetKey(collection, userID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Internal("failed to encode document field", err.Error())
	}
	return MergeUpdate(collection, userID, map[string]json.RawMessage{key: raw})
}
