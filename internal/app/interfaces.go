package app

import "context"

type Store interface {
	EnsureSchema(ctx context.Context) error
	ReadDoc(ctx context.Context, key string) ([]byte, bool, error)
	WriteDoc(ctx context.Context, key string, value []byte) error
	DeleteDoc(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
