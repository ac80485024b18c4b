package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/hotel-pms/internal/core/property"
	pgdb "github.com/ogurasousui/hotel-pms/internal/platform/db/postgres"
)

const invalidTextRepresentationCode = "22P02"

// ErrInvalidValue は JSON として解釈できない値を保存しようとした場合に返却されます。
var ErrInvalidValue = errors.New("postgres: value is not valid json")

// KVRepository は kv_entries テーブルを利用したキー/値の永続化実装です。
type KVRepository struct {
	pool pgdb.Queryer
}

// NewKVRepository は KVRepository を生成します。
func NewKVRepository(pool pgdb.Queryer) *KVRepository {
	return &KVRepository{pool: pool}
}

// Get はキーに対応する JSON 値を返します。
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT value
          FROM kv_entries
         WHERE key = $1
    `, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		return nil, translateKVPgError(err)
	}
	return value, nil
}

// Set は値を保存します。既存のキーは上書きします。
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO kv_entries (key, value, updated_at)
        VALUES ($1, $2::jsonb, now())
        ON CONFLICT (key) DO UPDATE
           SET value = EXCLUDED.value,
               updated_at = EXCLUDED.updated_at
    `, key, string(value))
	if err != nil {
		return translateKVPgError(err)
	}
	return nil
}

// Delete はキーを削除します。存在しないキーは無視します。
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return translateKVPgError(err)
	}
	return nil
}

func translateKVPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return property.ErrKeyNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentationCode {
		return fmt.Errorf("%w: %s", ErrInvalidValue, pgErr.Message)
	}
	return err
}
