// Package staterepo persists the client's logical records as opaque
// key/value blobs. Each record is JSON-encoded by the state store; this
// layer only moves bytes.
package staterepo

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
