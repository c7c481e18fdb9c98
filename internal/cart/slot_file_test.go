package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlot_MissingFileStartsEmpty(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "cart.json"))

	data, err := slot.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	s := NewStore(slot)
	assert.Empty(t, s.Items())
}

func TestFileSlot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	s := NewStore(NewFileSlot(path))
	require.NoError(t, s.Add(product(1, "mug", "10.00")))
	require.NoError(t, s.SetQuantity(1, 3))

	// 同じファイルから作り直しても中身と合計は変わらない
	restored := NewStore(NewFileSlot(path))
	assert.Equal(t, s.Items(), restored.Items())
	assert.True(t, restored.TotalPrice().Equal(decimal.RequireFromString("30.00")))
}

func TestFileSlot_BrokenFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nope"`), 0o644))

	s := NewStore(NewFileSlot(path))
	assert.Empty(t, s.Items())
}
