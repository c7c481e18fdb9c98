package cart

import (
	"os"
)

// FileSlot はJSONファイル1つに保存する実装。
type FileSlot struct {
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (f *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileSlot) Save(data []byte) error {
	return os.WriteFile(f.path, data, 0o644)
}
