package models

import "strings"

// Book is the catalog entity exactly as the backend serializes it.
type Book struct {
	ID      int64   `json:"id"`
	Titulo  string  `json:"titulo"`
	Autor   string  `json:"autor"`
	Editora string  `json:"editora"`
	Genero  string  `json:"genero"`
	Ano     int     `json:"ano"`
	Paginas int     `json:"paginas"`
	Preco   float64 `json:"preco"`
}

// LineItem is one distinct book in the cart plus its purchase quantity.
// Book fields are copied at add time and are display-only afterwards; the
// unit price never tracks later catalog changes. Quantity may be absent in
// snapshots written by older clients, in which case it reads as 1.
type LineItem struct {
	Book
	Quantity int `json:"quantity,omitempty"`
}

// EffectiveQuantity returns the purchase quantity, defaulting to 1 when the
// snapshot recorded none.
func (li LineItem) EffectiveQuantity() int {
	if li.Quantity <= 0 {
		return 1
	}
	return li.Quantity
}

// Session is the client's record of who is logged in. Its mere presence
// means "logged in"; nothing validates or expires it.
type Session struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Endereco is the delivery address collected at checkout. It is transient:
// held only in checkout form state, never persisted.
type Endereco struct {
	Estado string `json:"estado"`
	Cidade string `json:"cidade"`
	Rua    string `json:"rua"`
	Numero string `json:"numero"`
	Bairro string `json:"bairro"`
}

// Complete reports whether all five fields are non-empty after trimming.
func (e Endereco) Complete() bool {
	fields := []string{e.Estado, e.Cidade, e.Rua, e.Numero, e.Bairro}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

type FormaPagamento string

const (
	CartaoCredito FormaPagamento = "CARTAO_CREDITO"
	CartaoDebito  FormaPagamento = "CARTAO_DEBITO"
	Pix           FormaPagamento = "PIX"
)

func (f FormaPagamento) Valid() bool {
	switch f {
	case CartaoCredito, CartaoDebito, Pix:
		return true
	}
	return false
}

// Carrinho is the cart portion of the checkout wire payload.
type Carrinho struct {
	Itens []LineItem `json:"itens"`
}

// CheckoutRequest is the payload POSTed to /v1/user/checkout. ValorTotal
// includes shipping; the backend trusts the submitted total.
type CheckoutRequest struct {
	User           string         `json:"user"`
	Email          string         `json:"email"`
	ValorTotal     float64        `json:"valorTotal"`
	Carrinho       Carrinho       `json:"carrinho"`
	FormaPagamento FormaPagamento `json:"formaPagamento"`
	Endereco       Endereco       `json:"endereco"`
}

// Payment is one entry of the order history returned by
// /v1/user/pagamentos/{email}.
type Payment struct {
	ID             int64          `json:"id"`
	User           string         `json:"user"`
	Email          string         `json:"email"`
	ValorTotal     float64        `json:"valorTotal"`
	FormaPagamento FormaPagamento `json:"formaPagamento"`
	DataPagamento  string         `json:"dataPagamento,omitempty"`
}
