package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/listquery"
	repo "app/internal/repository"
	"app/internal/validator"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	// 削除時に配下の商品ごと消すかどうか（設定で切り替え）
	cascadeDelete bool
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, productRepo repo.ProductRepository, cascadeDelete bool) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		cascadeDelete: cascadeDelete,
	}
}

type CategoryListOutput struct {
	Items []model.Category `json:"items"`
	Meta  PageMeta         `json:"meta"`
}

func (u *CategoryUsecase) ListCategories(ctx context.Context, q listquery.Query) (CategoryListOutput, error) {
	items, total, err := u.categoryRepo.List(ctx, q)
	if err != nil {
		return CategoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CategoryListOutput{
		Items: items,
		Meta:  NewPageMeta(total, q),
	}, nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, categoryID int64) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

type SaveCategoryInput struct {
	Name string `form:"name" validate:"required,max=255"`
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, in SaveCategoryInput) (model.Category, error) {
	if fields := validator.Struct(in); fields != nil {
		return model.Category{}, NewValidationError(fields)
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name: strings.TrimSpace(in.Name),
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, categoryID int64, in SaveCategoryInput) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if fields := validator.Struct(in); fields != nil {
		return NewValidationError(fields)
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:   categoryID,
		Name: strings.TrimSpace(in.Name),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CategoryUsecase) DeleteCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	// カスケード無効なら依存商品を数えて先に409を返す。
	// repo側もトランザクション内で再チェックする。
	if !u.cascadeDelete {
		count, err := u.productRepo.CountByCategory(ctx, categoryID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if count > 0 {
			return NewHTTPError(http.StatusConflict, "category still has products")
		}
	}

	err := u.categoryRepo.Delete(ctx, categoryID, u.cascadeDelete)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrConflict {
		return NewHTTPError(http.StatusConflict, "category still has products")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
