package rest

import (
	"fmt"

	"github.com/finman-app/finman-backend/internal/domain"
)

func notFound(path string) error {
	return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
}
