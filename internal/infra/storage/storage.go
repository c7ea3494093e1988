package storage

import (
	"context"
	"encoding/base64"
)

// Storage puts a blob somewhere the public site can load it from and returns
// its URL.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
	Ping(ctx context.Context) error
	Name() string
}

// DataURLStorage inlines the blob as a data: URL. Used when no bucket is
// configured; the URL is stored directly in the gallery row.
type DataURLStorage struct{}

func (DataURLStorage) Put(_ context.Context, _ string, contentType string, body []byte) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

func (DataURLStorage) Ping(context.Context) error { return nil }

func (DataURLStorage) Name() string { return "inline" }
