package documents

import "time"

// UploadResponse is the composed result of one ingestion pipeline run.
type UploadResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Pages       int       `json:"pages"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	UploadDate  time.Time `json:"uploadDate"`
	StoragePath *string   `json:"storagePath"`
}

// ListItem is the outward-facing representation of a stored document.
type ListItem struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Pages       int       `json:"pages"`
	SizeBytes   int64     `json:"sizeBytes"`
	Summary     string    `json:"summary,omitempty"`
	UploadDate  time.Time `json:"uploadDate"`
	StoragePath *string   `json:"storagePath"`
}

// PageResponse is one reader page of a document.
type PageResponse struct {
	DocumentID string `json:"documentId"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Content    string `json:"content"`
}

func toListItem(doc Document) ListItem {
	return ListItem{
		ID:          doc.ID,
		Filename:    doc.FileName,
		Pages:       doc.PageCount,
		SizeBytes:   doc.SizeBytes,
		Summary:     doc.Summary,
		UploadDate:  doc.UploadedAt,
		StoragePath: optionalKey(doc.StorageKey),
	}
}

func optionalKey(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}
