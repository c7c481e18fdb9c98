package cart

import (
	"encoding/json"
	"sync"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
}

// Slot はカート1つぶんの保存枠。
// Loadが(nil, nil)を返したら「まだ何も保存されていない」扱い。
type Slot interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Store は画面側のカート。変更のたびにSlotへ保存する。
type Store struct {
	mu    sync.Mutex
	slot  Slot
	items []Item
}

// 保存済みの内容から復元する。読めない・壊れているときは空で始める。
func NewStore(slot Slot) *Store {
	s := &Store{slot: slot}
	s.items = loadItems(slot)
	return s
}

func loadItems(slot Slot) []Item {
	data, err := slot.Load()
	if err != nil || len(data) == 0 {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return []Item{}
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.Price.IsNegative() {
			return []Item{}
		}
	}
	return items
}

// 同じ商品ならquantityを+1、無ければ1個で追加する。
func (s *Store) Add(p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			return s.persist()
		}
	}
	s.items = append(s.items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
	return s.persist()
}

func (s *Store) Remove(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(productID)
}

func (s *Store) removeLocked(productID int64) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// 0以下は削除と同じ
func (s *Store) SetQuantity(productID int64, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(productID)
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Item{}
	return s.persist()
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalQuantity() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.slot.Save(data)
}
