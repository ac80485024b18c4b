package department

import "context"

// Repository は部署エンティティの永続化を行うインターフェースです。
// List は登録順を保って返します。
type Repository interface {
	Create(ctx context.Context, department *Department) (*Department, error)
	Update(ctx context.Context, department *Department) (*Department, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
}
