package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	// List は登録順で全社員を返します。
	List(ctx context.Context) ([]*Employee, error)
	// NextSequence は社員コード用の単調増加する番号を払い出します。
	NextSequence(ctx context.Context) (int, error)
}

// ShiftCleaner は社員削除時にシフトを連鎖削除します。
type ShiftCleaner interface {
	DeleteByEmployee(ctx context.Context, employeeID string) (int, error)
}
