package property

import "context"

// Store はキー/値の永続化を行うインターフェースです。値は JSON のバイト列です。
type Store interface {
	// Get は未保存のキーに対して ErrKeyNotFound を返します。
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete は未保存のキーを無視します。
	Delete(ctx context.Context, key string) error
}
