package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/listquery"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type TagGormRepository struct {
	db *gorm.DB
}

// DI
func NewTagGormRepository(db *gorm.DB) *TagGormRepository {
	return &TagGormRepository{db: db}
}

func (r *TagGormRepository) ListAll(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Order("id asc").Find(&tags).Error
	if err != nil {
		return []model.Tag{}, err
	}
	return tags, nil
}

func (r *TagGormRepository) List(ctx context.Context, q listquery.Query) ([]model.Tag, int64, error) {
	var tags []model.Tag
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Tag{})

	if q.Search != "" {
		tx = tx.Where("name ILIKE ?", "%"+q.Search+"%")
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Tag{}, 0, err
	}

	tx = applyOrder(tx, q, "tags")

	if err := tx.Offset(q.Offset()).Limit(q.Limit()).Find(&tags).Error; err != nil {
		return []model.Tag{}, 0, err
	}
	return tags, total, nil
}

func (r *TagGormRepository) FindByID(ctx context.Context, id int64) (model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Tag{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Tag{}, err
	}
	return t, nil
}

func (r *TagGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}
	var tags []model.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&tags).Error
	if err != nil {
		return []model.Tag{}, err
	}
	return tags, nil
}

func (r *TagGormRepository) Create(ctx context.Context, t model.Tag) (model.Tag, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Tag{}, err
	}
	return t, nil
}

func (r *TagGormRepository) Update(ctx context.Context, t model.Tag) error {
	res := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id = ?", t.ID).
		Update("name", t.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TagGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_tag WHERE tag_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// まとめて削除。存在しないIDが混ざっていても黙って飛ばす。
func (r *TagGormRepository) DeleteBulk(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_tag WHERE tag_id IN ?", ids).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Tag{}).Error
	})
}
