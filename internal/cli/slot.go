package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/recipes/internal/config"
	"github.com/idilsaglam/recipes/internal/store"
	"github.com/idilsaglam/recipes/internal/store/jsonstore"
	"github.com/idilsaglam/recipes/internal/store/memstore"
	"github.com/idilsaglam/recipes/internal/store/pgstore"
	"github.com/idilsaglam/recipes/internal/store/s3store"
	"github.com/idilsaglam/recipes/internal/store/sqlitestore"
)

// OpenSlot opens the slot backend named by c.Driver. Network drivers retry
// their first contact with store.ConnectBackoff.
func OpenSlot(ctx context.Context, c config.StoreConfig) (store.Slot, error) {
	d, err := store.ParseDriver(strings.ToLower(c.Driver))
	if err != nil {
		return nil, err
	}
	switch d {
	case store.DriverMemory:
		return memstore.New(), nil
	case store.DriverSQLite:
		s, err := sqlitestore.New(ctx, c.SQLitePath, c.Key)
		if err != nil {
			return nil, err
		}
		return s, nil
	case store.DriverPostgres:
		if c.PostgresDSN == "" {
			return nil, fmt.Errorf("store.postgres_dsn is required for the %s driver", d)
		}
		s, err := pgstore.New(ctx, c.PostgresDSN, c.Key, store.ConnectBackoff())
		if err != nil {
			return nil, err
		}
		return s, nil
	case store.DriverS3:
		s, err := s3store.New(ctx, s3store.Config{
			Bucket:          c.S3.Bucket,
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			Prefix:          c.S3.Prefix,
			PathStyle:       c.S3.PathStyle,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		}, c.Key, store.ConnectBackoff())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := jsonstore.New(c.Dir, c.Key)
	if err != nil {
		return nil, err
	}
	return s, nil
}
