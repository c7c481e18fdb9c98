// Package listquery は信頼できないクエリパラメータを
// 正規化された一覧クエリに変換する。
package listquery

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

type Direction string

const (
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
)

const DefaultPageSize = 10

// Options はエンドポイントごとの設定。
type Options struct {
	PageSize   int
	SortFields []string // ソート可能なカラムのホワイトリスト
}

// Query は正規化済みの一覧クエリ。
// 同じ入力からは常に同じQueryになる（ページネーションリンクの往復に必要）。
type Query struct {
	Search     string
	SortField  string // 空なら作成日時の降順
	SortDir    Direction
	CategoryID int64 // 0なら絞り込みなし
	TagIDs     []int64
	Page       int
	PageSize   int
}

// Parse は未知・不正なパラメータを項目ごとに黙って無視する。
// 明示的な検証は書き込み系のバリデーションで行う。
func Parse(values url.Values, opts Options) Query {
	q := Query{
		SortDir:  DirAsc,
		Page:     1,
		PageSize: opts.PageSize,
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	q.Search = strings.TrimSpace(values.Get("search"))

	// sortはホワイトリストにあるときだけ有効
	if s := values.Get("sort"); s != "" && contains(opts.SortFields, s) {
		q.SortField = s
		if values.Get("direction") == string(DirDesc) {
			q.SortDir = DirDesc
		}
	}

	if v := values.Get("category"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			q.CategoryID = id
		}
	}

	q.TagIDs = parseIDSet(values, "tag_ids", "tag_ids[]")

	if v := values.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 1 {
			q.Page = p
		}
	}

	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

func (q Query) Limit() int {
	return q.PageSize
}

// TotalPages は総件数からページ数を計算する。
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// 重複を除いて昇順に並べる（集合として正規化する）
func parseIDSet(values url.Values, keys ...string) []int64 {
	seen := map[int64]bool{}
	var ids []int64
	for _, key := range keys {
		for _, raw := range values[key] {
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.ParseInt(part, 10, 64)
				if err != nil || id <= 0 || seen[id] {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
