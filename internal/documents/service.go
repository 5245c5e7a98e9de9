package documents

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libramind-backend/internal/extract"
	"libramind-backend/internal/shared/metrics"
	"libramind-backend/internal/shared/storage/object"
	"libramind-backend/internal/shared/telemetry"
	"libramind-backend/internal/shared/util"
	"libramind-backend/internal/summarize"
)

// Service runs the ingestion pipeline and serves stored documents.
// Store is nil when binary persistence is not configured; the pipeline
// then skips the object-store step entirely.
type Service struct {
	Repo         Repo
	Store        object.ObjectStore
	Summarizer   *summarize.Summarizer
	PreviewChars int
	PageChars    int
}

// Ingest runs the five-step upload pipeline: extract, optionally store the
// raw bytes, insert the record, summarize, write the summary back. Only the
// record insert can fail the request; every other step degrades.
func (s *Service) Ingest(ctx context.Context, userID, fileName string, data []byte) (UploadResponse, error) {
	if userID == "" {
		return UploadResponse{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := time.Now()

	extracted := extract.Extract(data, sanitized)
	if extracted.Degraded {
		metrics.IncExtractionPlaceholder()
		telemetry.Warn("document.extract.degraded", map[string]any{
			"user_id":   userID,
			"file_name": sanitized,
			"bytes":     len(data),
		})
	}

	docID := uuid.NewString()

	storageKey := ""
	if s.Store != nil {
		key := fmt.Sprintf("%s/%s.pdf", userID, docID)
		if _, err := s.Store.Put(ctx, key, "application/pdf", bytes.NewReader(data)); err != nil {
			// Binary persistence is optional metadata, not a durability guarantee.
			telemetry.Warn("document.store.failed", map[string]any{
				"user_id":     userID,
				"document_id": docID,
				"err":         err.Error(),
			})
		} else {
			storageKey = key
		}
	}

	doc := Document{
		ID:         docID,
		UserID:     userID,
		FileName:   sanitized,
		Content:    extracted.Text,
		PageCount:  extracted.PageCount,
		SizeBytes:  int64(len(data)),
		StorageKey: storageKey,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		metrics.IncUpload("failed")
		return UploadResponse{}, fmt.Errorf("create document: %w", err)
	}

	summary, usedFallback := s.Summarizer.Summarize(ctx, extracted.Text)
	if usedFallback {
		metrics.IncSummaryFallback()
	}

	if err := s.Repo.UpdateSummary(ctx, userID, docID, summary); err != nil {
		// The upload already succeeded; the record may stay summaryless.
		telemetry.Error("document.summary_update.failed", map[string]any{
			"user_id":     userID,
			"document_id": docID,
			"err":         err.Error(),
		})
	}

	metrics.IncUpload("completed")
	metrics.ObserveUploadSeconds(time.Since(start).Seconds())

	previewChars := s.PreviewChars
	if previewChars <= 0 {
		previewChars = 1000
	}

	return UploadResponse{
		ID:          docID,
		Filename:    sanitized,
		Pages:       extracted.PageCount,
		Content:     util.TruncateRunes(extracted.Text, previewChars),
		Summary:     summary,
		UploadDate:  doc.UploadedAt,
		StoragePath: optionalKey(storageKey),
	}, nil
}

// List returns the owner's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]ListItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	docs, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]ListItem, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toListItem(doc))
	}
	return out, nil
}

// Page serves one reader page of a document's extracted text.
func (s *Service) Page(ctx context.Context, userID, documentID string, page int) (PageResponse, error) {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return PageResponse{}, err
	}

	pages := SplitPages(doc.Content, s.PageChars)
	if len(pages) == 0 {
		return PageResponse{}, fmt.Errorf("%w: document has no content", ErrNotFound)
	}
	if page < 1 || page > len(pages) {
		return PageResponse{}, fmt.Errorf("%w: page out of range", ErrInvalidInput)
	}

	return PageResponse{
		DocumentID: doc.ID,
		Page:       page,
		TotalPages: len(pages),
		Content:    pages[page-1],
	}, nil
}
