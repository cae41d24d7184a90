package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema/schema.sql
var schemaSQL string

// EnsureSchema aplica el esquema embebido. Todas las sentencias son IF NOT EXISTS.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
