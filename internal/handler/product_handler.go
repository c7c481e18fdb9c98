package handler

import (
	"net/http"
	"strconv"

	"app/internal/listquery"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 商品一覧で並び替えに使えるカラム
var productSortFields = []string{"name", "price", "created_at"}

// /products の公開API
type ProductHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewProductHandler(uc *usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

// 一覧は絞り込みUI用のカテゴリ・タグも一緒に返す
type productIndexResponse struct {
	usecase.ProductListOutput
	Filters usecase.FilterOptionsOutput `json:"filters"`
}

func (h *ProductHandler) list(c echo.Context) error {
	q := listquery.Parse(c.QueryParams(), listquery.Options{
		SortFields: productSortFields,
	})

	out, err := h.uc.ListProducts(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	filters, err := h.uc.FilterOptions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, productIndexResponse{
		ProductListOutput: out,
		Filters:           filters,
	})
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
