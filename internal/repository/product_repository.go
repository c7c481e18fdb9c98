package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/listquery"
)

var ErrNotFound = errors.New("not found")

// 依存する行が残っているときの削除衝突（カスケード無効時のみ）
var ErrConflict = errors.New("conflict")

// 商品の永続化（保存・取得）だけを約束。
// tagIDs は「完全な望ましい集合」を渡す（差分ではない）。
type ProductRepository interface {
	List(ctx context.Context, q listquery.Query) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 同一カテゴリの関連商品（自分自身は除く）
	FindRelated(ctx context.Context, categoryID int64, excludeID int64, limit int) ([]model.Product, error)

	Create(ctx context.Context, p model.Product, tagIDs []int64) (model.Product, error)
	Update(ctx context.Context, p model.Product, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error

	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}
