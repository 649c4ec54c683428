package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kropsz/elivraria/internal/localstore"
	"github.com/kropsz/elivraria/internal/models"
	"github.com/kropsz/elivraria/internal/notify"
)

const storageKey = "cart"

// Store holds the authoritative in-memory cart and mirrors it to client
// storage on every mutation. Insertion order is the display order, and at
// most one line item exists per book id.
//
// The storefront is single threaded (event driven), so operations do not
// lock; each one is atomic from the caller's perspective.
type Store struct {
	kv       *localstore.Store
	notifier notify.Notifier
	logger   *slog.Logger
	items    []models.LineItem
}

// NewStore rehydrates the cart from storage. A corrupt snapshot is logged
// and discarded; existing state must never make the store unusable.
func NewStore(kv *localstore.Store, notifier notify.Notifier, logger *slog.Logger) *Store {
	s := &Store{kv: kv, notifier: notifier, logger: logger}

	raw, ok, err := kv.Get(storageKey)
	if err != nil {
		logger.Error("cart_load_failed", "error", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal(raw, &s.items); err != nil {
		logger.Error("cart_snapshot_corrupt", "error", err)
		s.items = nil
	}
	return s
}

// Items returns the line items in display order.
func (s *Store) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// AddToCart merges the book into the cart. A repeated id adds the new
// quantity onto the existing one instead of creating a second entry.
// Quantities below 1 count as 1.
func (s *Store) AddToCart(book models.Book, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range s.items {
		if s.items[i].ID == book.ID {
			s.items[i].Quantity = s.items[i].EffectiveQuantity() + quantity
			s.persist()
			s.notifier.Notify(notify.Info(
				"Quantidade atualizada",
				fmt.Sprintf("%s agora tem %d unidades no carrinho.", book.Titulo, s.items[i].Quantity),
			))
			return
		}
	}

	s.items = append(s.items, models.LineItem{Book: book, Quantity: quantity})
	s.persist()
	s.notifier.Notify(notify.Info(
		"Livro adicionado",
		fmt.Sprintf("%s foi adicionado ao seu carrinho.", book.Titulo),
	))
}

// RemoveFromCart removes the line item with that id. Removing an absent id
// is a silent no-op.
func (s *Store) RemoveFromCart(id int64) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			s.notifier.Notify(notify.Info(
				"Livro removido",
				"O livro foi removido do seu carrinho.",
			))
			return
		}
	}
}

// UpdateQuantity sets the quantity of the item with that id exactly.
// Quantities of zero or less remove the item instead.
func (s *Store) UpdateQuantity(id int64, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(id)
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.items = nil
	s.persist()
	s.notifier.Notify(notify.Info(
		"Carrinho limpo",
		"Todos os itens foram removidos do seu carrinho.",
	))
}

// Total is the subtotal over all items. Items without a recorded quantity
// count once.
func (s *Store) Total() float64 {
	var total float64
	for _, it := range s.items {
		total += it.Preco * float64(it.EffectiveQuantity())
	}
	return total
}

// ItemCount is the number of distinct line items, not the sum of
// quantities.
func (s *Store) ItemCount() int {
	return len(s.items)
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("cart_encode_failed", "error", err)
		return
	}
	if err := s.kv.Put(storageKey, raw); err != nil {
		s.logger.Error("cart_persist_failed", "error", err)
	}
}
