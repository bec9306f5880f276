package event

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkProcessed(ctx context.Context, id string) (Event, error)
	// MarkFailed appends errs to the metadata "errors" list (read-merge-write,
	// never a wholesale overwrite) and sets the terminal state.
	MarkFailed(ctx context.Context, id string, errs []string) (Event, error)
	ResetForReplay(ctx context.Context, id string) (Event, error)
}
