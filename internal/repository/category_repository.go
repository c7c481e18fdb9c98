package repository

import (
	"context"

	"app/internal/domain/model"
	"app/internal/listquery"
)

type CategoryRepository interface {
	// 絞り込みUI用の全件
	ListAll(ctx context.Context) ([]model.Category, error)
	List(ctx context.Context, q listquery.Query) ([]model.Category, int64, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	// cascade=false のとき依存商品が残っていれば ErrConflict
	Delete(ctx context.Context, id int64, cascade bool) error
}
