package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ローカルディスクに画像を置く実装。
// ファイル名はuuidで衝突を避ける。
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{dir: dir}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, ext string, data []byte) (string, error) {
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	// DBにはWebから参照できるパスで保存する
	return "/images/" + name, nil
}
