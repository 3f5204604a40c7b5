package inquirylog

import "context"

// Repository persists inquiry log entries. Save appends; rows are never
// updated.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}
