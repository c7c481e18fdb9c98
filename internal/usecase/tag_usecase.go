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

type TagUsecase struct {
	tagRepo repo.TagRepository
}

// DI
func NewTagUsecase(tagRepo repo.TagRepository) *TagUsecase {
	return &TagUsecase{tagRepo: tagRepo}
}

type TagListOutput struct {
	Items []model.Tag `json:"items"`
	Meta  PageMeta    `json:"meta"`
}

func (u *TagUsecase) ListTags(ctx context.Context, q listquery.Query) (TagListOutput, error) {
	items, total, err := u.tagRepo.List(ctx, q)
	if err != nil {
		return TagListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return TagListOutput{
		Items: items,
		Meta:  NewPageMeta(total, q),
	}, nil
}

func (u *TagUsecase) GetTag(ctx context.Context, tagID int64) (model.Tag, error) {
	if tagID <= 0 {
		return model.Tag{}, NewHTTPError(http.StatusBadRequest, "invalid tag id")
	}

	t, err := u.tagRepo.FindByID(ctx, tagID)
	if err == repo.ErrNotFound {
		return model.Tag{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Tag{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return t, nil
}

type SaveTagInput struct {
	Name string `form:"name" validate:"required,max=255"`
}

func (u *TagUsecase) CreateTag(ctx context.Context, in SaveTagInput) (model.Tag, error) {
	if fields := validator.Struct(in); fields != nil {
		return model.Tag{}, NewValidationError(fields)
	}

	t, err := u.tagRepo.Create(ctx, model.Tag{
		Name: strings.TrimSpace(in.Name),
	})
	if err != nil {
		return model.Tag{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return t, nil
}

func (u *TagUsecase) UpdateTag(ctx context.Context, tagID int64, in SaveTagInput) error {
	if tagID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid tag id")
	}
	if fields := validator.Struct(in); fields != nil {
		return NewValidationError(fields)
	}

	err := u.tagRepo.Update(ctx, model.Tag{
		ID:   tagID,
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

func (u *TagUsecase) DeleteTag(ctx context.Context, tagID int64) error {
	if tagID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid tag id")
	}

	err := u.tagRepo.Delete(ctx, tagID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// まとめて削除。存在しないIDが混ざっていたら何も消さずに422を返す。
func (u *TagUsecase) BulkDeleteTags(ctx context.Context, rawIDs []string) error {
	ids, ok := parseIDList(rawIDs)
	if !ok || len(ids) == 0 {
		return NewValidationError(map[string]string{"ids": "must be a list of tag ids"})
	}

	found, err := u.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(found) != len(ids) {
		return NewValidationError(map[string]string{"ids": "contains an unknown tag"})
	}

	if err := u.tagRepo.DeleteBulk(ctx, ids); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
