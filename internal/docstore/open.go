package docstore

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/HendryAvila/focusmate/internal/config"
)

// Open connects the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config) (Handle, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return NewSQLite(cfg.SQLite.Dir)
	case config.BackendPostgres:
		return NewPostgres(ctx, cfg.Postgres.DSN)
	case config.BackendMinio:
		client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("docstore: create minio client: %w", err)
		}
		return NewObjectStore(ctx, client, cfg.Minio.Bucket, cfg.Minio.Prefix)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("docstore: unknown backend %q", cfg.Store.Backend)
	}
}
