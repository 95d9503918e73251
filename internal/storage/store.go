// Package storage holds the remote attachment store the report lifecycle
// uploads photo evidence to.
package storage

import (
	"context"
	"errors"
)

// ErrUpload covers any failed interaction with the remote store, upload or
// delete alike. Callers abort the surrounding operation; nothing retries.
var ErrUpload = errors.New("attachment store operation failed")

// UploadMeta feeds the remote path so objects stay browsable per user and
// trip.
type UploadMeta struct {
	OwnerID   string
	OwnerName string
	TripID    string
	TripName  string
}

// ObjectStore is the contract the report lifecycle depends on. Upload returns
// the public URL of the stored object; DeleteByURL removes the object that a
// previous Upload returned.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, fileName string, meta UploadMeta) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}
