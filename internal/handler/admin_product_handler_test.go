package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminProductHandler_CreateRejectsNonMultipart(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(`{"name":"mug"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	h := NewAdminProductHandler(nil)
	require.NoError(t, h.create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminProductHandler_UpdateRejectsNonMultipart(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/admin/products/1", strings.NewReader("name=mug"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewAdminProductHandler(nil)
	require.NoError(t, h.update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBindSaveProduct_ReadsMultipartFields(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "mug"))
	require.NoError(t, w.WriteField("price", "12.50"))
	require.NoError(t, w.WriteField("category_id", "3"))
	require.NoError(t, w.WriteField("tags[]", "1"))
	require.NoError(t, w.WriteField("tags[]", "2"))
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/products", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	c := e.NewContext(req, httptest.NewRecorder())

	in, err := bindSaveProduct(c)
	require.NoError(t, err)
	assert.Equal(t, "mug", in.Name)
	assert.Equal(t, "12.50", in.Price)
	assert.Equal(t, "3", in.CategoryID)
	assert.Equal(t, []string{"1", "2"}, in.TagIDs)
	assert.Nil(t, in.Image)
}
