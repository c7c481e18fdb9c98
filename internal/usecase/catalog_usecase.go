package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"app/internal/domain/model"
	"app/internal/listquery"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/shopspring/decimal"
)

// 関連商品は最大4件
const relatedLimit = 4

// 画像は2MBまで
const maxImageBytes = 2 << 20

// content-type -> 保存時の拡張子
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// アップロード画像の保存先。戻り値はDBへ入れるパス。
type ImageStore interface {
	Save(ctx context.Context, ext string, data []byte) (string, error)
}

type CatalogUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	tagRepo      repo.TagRepository
	images       ImageStore
}

// DI
func NewCatalogUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	tagRepo repo.TagRepository,
	images ImageStore,
) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		images:       images,
	}
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPageMeta(total int64, q listquery.Query) PageMeta {
	return PageMeta{
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: listquery.TotalPages(total, q.PageSize),
	}
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Meta  PageMeta        `json:"meta"`
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, q listquery.Query) (ProductListOutput, error) {
	items, total, err := u.productRepo.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductListOutput{
		Items: items,
		Meta:  NewPageMeta(total, q),
	}, nil
}

type ProductDetailOutput struct {
	Product model.Product   `json:"product"`
	Related []model.Product `json:"related_products"`
}

func (u *CatalogUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	related, err := u.productRepo.FindRelated(ctx, p.CategoryID, p.ID, relatedLimit)
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductDetailOutput{Product: p, Related: related}, nil
}

// 一覧の絞り込みUI用（カテゴリとタグの全件）
type FilterOptionsOutput struct {
	Categories []model.Category `json:"categories"`
	Tags       []model.Tag      `json:"tags"`
}

func (u *CatalogUsecase) FilterOptions(ctx context.Context) (FilterOptionsOutput, error) {
	categories, err := u.categoryRepo.ListAll(ctx)
	if err != nil {
		return FilterOptionsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	tags, err := u.tagRepo.ListAll(ctx)
	if err != nil {
		return FilterOptionsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return FilterOptionsOutput{Categories: categories, Tags: tags}, nil
}

type ImageUpload struct {
	Filename string
	Data     []byte
}

// 管理画面の作成/更新フォーム。数値はフォーム入力のまま文字列で受ける。
type SaveProductInput struct {
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"required"`
	CategoryID  string `form:"category_id" validate:"required"`
	TagIDs      []string
	Image       *ImageUpload
}

type savedProductFields struct {
	price      decimal.Decimal
	categoryID int64
	tagIDs     []int64
	imageExt   string
}

func (u *CatalogUsecase) validateSaveProduct(ctx context.Context, in SaveProductInput) (savedProductFields, map[string]string) {
	fields := validator.Struct(in)
	if fields == nil {
		fields = map[string]string{}
	}
	var out savedProductFields

	if _, ng := fields["price"]; !ng {
		price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
		switch {
		case err != nil:
			fields["price"] = "must be a number"
		case price.IsNegative():
			fields["price"] = "must be 0 or more"
		default:
			out.price = price
		}
	}

	if _, ng := fields["category_id"]; !ng {
		categoryID, err := strconv.ParseInt(in.CategoryID, 10, 64)
		if err != nil || categoryID <= 0 {
			fields["category_id"] = "is invalid"
		} else {
			ok, err := u.categoryRepo.Exists(ctx, categoryID)
			if err != nil {
				fields["category_id"] = "could not be verified"
			} else if !ok {
				fields["category_id"] = "does not exist"
			} else {
				out.categoryID = categoryID
			}
		}
	}

	tagIDs, ok := parseIDList(in.TagIDs)
	if !ok {
		fields["tags"] = "contains an invalid id"
	} else if len(tagIDs) > 0 {
		found, err := u.tagRepo.FindByIDs(ctx, tagIDs)
		if err != nil {
			fields["tags"] = "could not be verified"
		} else if len(found) != len(tagIDs) {
			fields["tags"] = "contains an unknown tag"
		}
	}
	out.tagIDs = tagIDs

	if in.Image != nil {
		ext, msg := checkImage(in.Image.Data)
		if msg != "" {
			fields["image"] = msg
		}
		out.imageExt = ext
	}

	if len(fields) > 0 {
		return savedProductFields{}, fields
	}
	return out, nil
}

func checkImage(data []byte) (string, string) {
	if len(data) == 0 {
		return "", "is empty"
	}
	if len(data) > maxImageBytes {
		return "", "must be 2MB or smaller"
	}
	ext, ok := allowedImageTypes[http.DetectContentType(data)]
	if !ok {
		return "", "must be a jpeg, png or gif image"
	}
	return ext, ""
}

func parseIDList(raw []string) ([]int64, bool) {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, true
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in SaveProductInput) (model.Product, error) {
	parsed, fields := u.validateSaveProduct(ctx, in)
	if fields != nil {
		return model.Product{}, NewValidationError(fields)
	}

	var imagePath string
	if in.Image != nil {
		path, err := u.images.Save(ctx, parsed.imageExt, in.Image.Data)
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "image store error")
		}
		imagePath = path
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       parsed.price,
		Image:       imagePath,
		CategoryID:  parsed.categoryID,
	}, parsed.tagIDs)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, productID int64, in SaveProductInput) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	parsed, fields := u.validateSaveProduct(ctx, in)
	if fields != nil {
		return NewValidationError(fields)
	}

	// 画像は差し替えがあったときだけ保存する（空なら現状維持）
	var imagePath string
	if in.Image != nil {
		path, err := u.images.Save(ctx, parsed.imageExt, in.Image.Data)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "image store error")
		}
		imagePath = path
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       parsed.price,
		Image:       imagePath,
		CategoryID:  parsed.categoryID,
	}, parsed.tagIDs)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
