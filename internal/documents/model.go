package documents

import "time"

// Document represents one uploaded PDF and its derived text/summary.
// Summary stays empty ("pending summary") until the summarizer step lands;
// StorageKey stays empty when binary persistence was skipped or failed.
type Document struct {
	ID         string
	UserID     string
	FileName   string
	Content    string
	Summary    string
	PageCount  int
	SizeBytes  int64
	StorageKey string
	UploadedAt time.Time
}
