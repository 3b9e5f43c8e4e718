// Package storage provides the record sources behind the status page
package storage

import (
	"context"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"serverhub/internal/types"
)

// New opens the record source selected by configuration. The sqlite source is
// seeded from the configured server list when it is empty.
func New(ctx context.Context, cfg *types.HubConfig, logger types.Logger) (types.RecordSource, error) {
	switch cfg.Storage.Type {
	case "memory":
		return NewMemory(cfg.Records()), nil
	case "sqlite":
		s, err := NewSQLite(cfg.Storage.DSN, logger)
		if err != nil {
			return nil, err
		}
		n, err := s.Count(ctx)
		if err != nil {
			s.Close()
			return nil, err
		}
		if n == 0 || len(cfg.Servers) > 0 {
			if err := s.Seed(ctx, cfg.Records()); err != nil {
				s.Close()
				return nil, fmt.Errorf("failed to seed servers: %w", err)
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage type: %s", types.ErrInvalidConfiguration, cfg.Storage.Type)
	}
}
