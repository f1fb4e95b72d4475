package store

import "context"

// Well-known document keys. Each key holds one whole JSON document;
// writes are last-write-wins over the entire document.
const (
	KeyUser    = "user"
	KeyProfile = "profile"
	KeyState   = "state"
	KeyTheme   = "theme"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	ReadDoc(ctx context.Context, key string) ([]byte, bool, error)
	WriteDoc(ctx context.Context, key string, value []byte) error
	DeleteDoc(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
