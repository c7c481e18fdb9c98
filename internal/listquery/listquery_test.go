package listquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var productOpts = Options{
	PageSize:   10,
	SortFields: []string{"name", "price", "created_at"},
}

func TestParse_Defaults(t *testing.T) {
	q := Parse(url.Values{}, productOpts)

	assert.Equal(t, "", q.Search)
	// sort未指定＝作成日時降順のデフォルト（SortField空で表す）
	assert.Equal(t, "", q.SortField)
	assert.Equal(t, DirAsc, q.SortDir)
	assert.Equal(t, int64(0), q.CategoryID)
	assert.Empty(t, q.TagIDs)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
}

func TestParse_SortWithoutDirectionDefaultsToAsc(t *testing.T) {
	v := url.Values{"sort": {"price"}}

	q := Parse(v, productOpts)
	assert.Equal(t, "price", q.SortField)
	assert.Equal(t, DirAsc, q.SortDir)
}

func TestParse_SortDesc(t *testing.T) {
	v := url.Values{"sort": {"name"}, "direction": {"desc"}}

	q := Parse(v, productOpts)
	assert.Equal(t, "name", q.SortField)
	assert.Equal(t, DirDesc, q.SortDir)
}

// ホワイトリスト外のsortは無視（エラーにしない）
func TestParse_UnknownSortIgnored(t *testing.T) {
	v := url.Values{"sort": {"password"}, "direction": {"desc"}}

	q := Parse(v, productOpts)
	assert.Equal(t, "", q.SortField)
	assert.Equal(t, DirAsc, q.SortDir)
}

func TestParse_MalformedValuesIgnored(t *testing.T) {
	v := url.Values{
		"category": {"abc"},
		"page":     {"-3"},
		"tag_ids":  {"x", "0", "-1"},
	}

	q := Parse(v, productOpts)
	assert.Equal(t, int64(0), q.CategoryID)
	assert.Equal(t, 1, q.Page)
	assert.Empty(t, q.TagIDs)
}

func TestParse_TagIDsNormalizedAsSet(t *testing.T) {
	v := url.Values{"tag_ids": {"3", "1", "3", "2,1"}}

	q := Parse(v, productOpts)
	assert.Equal(t, []int64{1, 2, 3}, q.TagIDs)
}

func TestParse_TagIDsBracketKey(t *testing.T) {
	v := url.Values{"tag_ids[]": {"5", "4"}}

	q := Parse(v, productOpts)
	assert.Equal(t, []int64{4, 5}, q.TagIDs)
}

func TestParse_CategoryAndPage(t *testing.T) {
	v := url.Values{"category": {"7"}, "page": {"3"}}

	q := Parse(v, productOpts)
	assert.Equal(t, int64(7), q.CategoryID)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Offset())
	assert.Equal(t, 10, q.Limit())
}

// 同じ入力は常に同じQueryになる
func TestParse_Deterministic(t *testing.T) {
	v := url.Values{
		"search":   {" coffee "},
		"sort":     {"price"},
		"tag_ids":  {"2", "9", "2"},
		"category": {"4"},
		"page":     {"2"},
	}

	a := Parse(v, productOpts)
	b := Parse(v, productOpts)
	assert.Equal(t, a, b)
	assert.Equal(t, "coffee", a.Search)
}

// 検索語はtrimするだけで大文字小文字は触らない。
// マッチはrepo側のILIKEが行う（検索は大文字小文字を区別しない）。
func TestParse_SearchKeepsCaseForILIKE(t *testing.T) {
	q := Parse(url.Values{"search": {" Coffee "}}, productOpts)
	assert.Equal(t, "Coffee", q.Search)
}

func TestParse_PageSizePerEndpoint(t *testing.T) {
	tagOpts := Options{PageSize: 2, SortFields: []string{"name"}}

	q := Parse(url.Values{}, tagOpts)
	assert.Equal(t, 2, q.PageSize)
	assert.Equal(t, 2, q.Limit())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 5, TotalPages(9, 2))
}
