package memory

import (
	"context"

	"github.com/ogurasousui/hotel-pms/internal/core/property"
)

// KVStore はキー/値をメモリ上に保持します。プロセス終了で消えます。
type KVStore struct {
	locker
	values map[string][]byte
}

// NewKVStore は空の KVStore を生成します。
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}

// Get は値の複製を返します。
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.read(ctx, func() error {
		v, ok := s.values[key]
		if !ok {
			return property.ErrKeyNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

// Set は値を保存します。
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.write(ctx, func() error {
		s.values[key] = append([]byte(nil), value...)
		return nil
	})
}

// Delete はキーを削除します。
func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.write(ctx, func() error {
		delete(s.values, key)
		return nil
	})
}
