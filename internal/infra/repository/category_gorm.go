package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/listquery"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error
	if err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

func (r *CategoryGormRepository) List(ctx context.Context, q listquery.Query) ([]model.Category, int64, error) {
	var categories []model.Category
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Category{})

	if q.Search != "" {
		tx = tx.Where("name ILIKE ?", "%"+q.Search+"%")
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Category{}, 0, err
	}

	tx = applyOrder(tx, q, "categories")

	if err := tx.Offset(q.Offset()).Limit(q.Limit()).Find(&categories).Error; err != nil {
		return []model.Category{}, 0, err
	}
	return categories, total, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリ削除。cascade=true なら依存商品ごと消す、
// falseなら依存商品が残っている限り ErrConflict。
func (r *CategoryGormRepository) Delete(ctx context.Context, id int64, cascade bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Count(&dependents).Error; err != nil {
			return err
		}

		if dependents > 0 {
			if !cascade {
				return repo.ErrConflict
			}

			// タグの中間行→商品の順で消す
			if err := tx.Exec(
				"DELETE FROM product_tag WHERE product_id IN (SELECT id FROM products WHERE category_id = ?)",
				id,
			).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).Delete(&model.Product{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
