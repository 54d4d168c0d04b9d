// Package transfer implements bulk export and import of a user's vault
// entries as a single JSON array document.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"passvault/internal/common"
	"passvault/internal/logging"
	"passvault/internal/server/vault"
)

// ExportFilename is the fixed name under which an export document is
// served as a download.
const ExportFilename = "vault-export.json"

// RecordError reports why a single imported element was rejected.
type RecordError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result is the per-record outcome of an import. The batch is best-effort:
// a failed element does not roll back the ones already inserted, so callers
// can retry just the failed subset.
type Result struct {
	Imported int           `json:"imported"`
	Failed   int           `json:"failed"`
	Errors   []RecordError `json:"errors,omitempty"`
}

type Service struct {
	repo   vault.Repository
	logger logging.Logger
}

func NewService(repo vault.Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "transfer"),
	}
}

// Export returns all of the owner's entries, ciphertext fields and
// identifiers included, for serialization into one JSON array.
func (s *Service) Export(ctx context.Context, ownerID string) ([]*vault.Entry, error) {
	entries, err := s.repo.GetByUser(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "error exporting entries", "error", err.Error())
		return nil, fmt.Errorf("error exporting entries: %w", err)
	}
	return entries, nil
}

// Import ingests a JSON array of entries. Every element loses any
// pre-existing identifier and timestamps and is inserted as a new entry
// owned by ownerID. The operation is additive: existing entries are never
// replaced or deduplicated.
//
// Only the document itself must be an array; elements are decoded one by
// one, so a malformed element is reported in Result.Errors without
// aborting the rest of the batch.
func (s *Service) Import(ctx context.Context, ownerID string, document []byte) (*Result, error) {

	// json.Unmarshal maps a top-level null to a nil slice without error,
	// so the nil check is what actually rejects it.
	var elements []json.RawMessage
	if err := json.Unmarshal(document, &elements); err != nil || elements == nil {
		return nil, fmt.Errorf("%w: document is not a JSON array of entries", common.ErrValidation)
	}

	result := &Result{}

	for i, raw := range elements {
		var item vault.Entry
		if err := json.Unmarshal(raw, &item); err != nil {
			s.logger.Error(ctx, "error decoding imported entry", "index", i, "error", err.Error())
			result.Failed++
			result.Errors = append(result.Errors, RecordError{Index: i, Reason: "not an entry document"})
			continue
		}

		entry := &vault.Entry{
			UserID:   ownerID,
			Title:    item.Title,
			Username: item.Username,
			Password: item.Password,
			URL:      item.URL,
			Notes:    item.Notes,
		}

		if _, err := s.repo.Create(ctx, entry); err != nil {
			s.logger.Error(ctx, "error importing entry", "index", i, "error", err.Error())
			result.Failed++
			result.Errors = append(result.Errors, RecordError{Index: i, Reason: "insert failed"})
			continue
		}
		result.Imported++
	}

	s.logger.Info(ctx, "import finished", "imported", result.Imported, "failed", result.Failed)

	return result, nil
}
