package repository

import (
	"context"

	"app/internal/domain/model"
	"app/internal/listquery"
)

type TagRepository interface {
	ListAll(ctx context.Context) ([]model.Tag, error)
	List(ctx context.Context, q listquery.Query) ([]model.Tag, int64, error)
	FindByID(ctx context.Context, id int64) (model.Tag, error)
	// 集合に含まれる既存タグだけを返す（存在チェック用）
	FindByIDs(ctx context.Context, ids []int64) ([]model.Tag, error)

	Create(ctx context.Context, t model.Tag) (model.Tag, error)
	Update(ctx context.Context, t model.Tag) error
	Delete(ctx context.Context, id int64) error
	DeleteBulk(ctx context.Context, ids []int64) error
}
