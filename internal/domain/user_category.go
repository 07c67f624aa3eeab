package domain

import "context"

// UserCategory is an entry in the shared catalog end users pick sub-category
// allocations from. Entries are created by typing a new name on the category
// screen; lazily created entries always start with Limit 0.
type UserCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

type UserCategoryRepository interface {
	List(ctx context.Context) ([]*UserCategory, error)
	// Create persists a new catalog entry; the backend assigns the id.
	Create(ctx context.Context, category *UserCategory) (*UserCategory, error)
}
