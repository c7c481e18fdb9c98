package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/listquery"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/タグ/ソート/ページング付きで返す。
// カテゴリとタグはまとめてPreloadする（行ごとの追加フェッチをしない）。
func (r *ProductGormRepository) List(ctx context.Context, q listquery.Query) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// name部分一致（ILIKE：大文字小文字を区別しない）
	if q.Search != "" {
		tx = tx.Where("products.name ILIKE ?", "%"+q.Search+"%")
	}

	if q.CategoryID > 0 {
		tx = tx.Where("products.category_id = ?", q.CategoryID)
	}

	// タグはOR（指定集合のどれか1つでも付いていれば一致）。
	// サブクエリなら重複行が出ないのでDISTINCT不要。
	if len(q.TagIDs) > 0 {
		tx = tx.Where(
			"products.id IN (SELECT product_id FROM product_tag WHERE tag_id IN ?)",
			q.TagIDs,
		)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	tx = applyOrder(tx, q, "products")

	err := tx.
		Preload("Category").
		Preload("Tags").
		Offset(q.Offset()).
		Limit(q.Limit()).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 関連商品：同一カテゴリ・自分以外。並びは新着順、同時刻はID昇順で安定させる。
func (r *ProductGormRepository) FindRelated(ctx context.Context, categoryID int64, excludeID int64, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id != ?", categoryID, excludeID).
		Order("created_at desc").Order("id asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product, tagIDs []int64) (model.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Category").Create(&p).Error; err != nil {
			return err
		}
		return replaceTags(tx, &p, tagIDs)
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// タグは完全置換（渡された集合がそのまま最終状態になる）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"category_id": p.CategoryID,
		}
		// 画像はファイルが来たときだけ差し替える
		if p.Image != "" {
			updates["image"] = p.Image
		}

		res := tx.Model(&model.Product{}).Where("id = ?", p.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		return replaceTags(tx, &model.Product{ID: p.ID}, tagIDs)
	})
}

// 商品削除（ハードデリート）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

func (r *ProductGormRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func replaceTags(tx *gorm.DB, p *model.Product, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return tx.Model(p).Association("Tags").Clear()
	}
	tags := make([]model.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, model.Tag{ID: id})
	}
	return tx.Model(p).Association("Tags").Replace(&tags)
}

// ホワイトリスト済みのソート指定を適用する。未指定は作成日時の降順。
func applyOrder(tx *gorm.DB, q listquery.Query, table string) *gorm.DB {
	if q.SortField != "" {
		return tx.Order(table + "." + q.SortField + " " + string(q.SortDir)).
			Order(table + ".id asc")
	}
	return tx.Order(table + ".created_at desc").Order(table + ".id desc")
}
