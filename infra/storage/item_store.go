package storage

import (
	"context"

	"itemshare/app/item"
	"itemshare/domain"
	"itemshare/pkg/config"
)

// NewItemStore builds the validator and item store the binaries share.
func NewItemStore(cfg *config.AppConfig, blobs item.BlobStore) (*item.Store, *item.Validator) {
	validator := item.NewValidator(cfg.CategoryList(), cfg.MaxImageBytes)

	var opts []item.StoreOption
	if cfg.SeedBaseline {
		opts = append(opts, item.WithBaseline(domain.Baseline()))
	}

	return item.NewStore(blobs, validator, opts...), validator
}

// HealthCheck pings blobs when the driver supports it and otherwise
// always reports healthy.
func HealthCheck(blobs item.BlobStore) func(ctx context.Context) error {
	pinger, ok := blobs.(item.Pinger)
	if !ok {
		return func(context.Context) error { return nil }
	}
	return pinger.Ping
}
