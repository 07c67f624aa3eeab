package domain

import "context"

// Administrator is a record in the admin collection. The usename key is a
// long-standing misspelling in the backend data; it is part of the wire
// format and kept as-is.
type Administrator struct {
	Usename  string `json:"usename"`
	Password string `json:"password"`
}

type AdminRepository interface {
	List(ctx context.Context) ([]*Administrator, error)
}
