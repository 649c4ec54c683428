package transport

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CheckoutItem carries only what the payment record cares about; the rest
// of the line item is display state the client keeps to itself.
type CheckoutItem struct {
	ID       int64   `json:"id"`
	Titulo   string  `json:"titulo"`
	Preco    float64 `json:"preco"`
	Quantity int     `json:"quantity"`
}

type CheckoutCart struct {
	Itens []CheckoutItem `json:"itens"`
}

type Endereco struct {
	Estado string `json:"estado"`
	Cidade string `json:"cidade"`
	Rua    string `json:"rua"`
	Numero string `json:"numero"`
	Bairro string `json:"bairro"`
}

type CheckoutRequest struct {
	User           string       `json:"user"`
	Email          string       `json:"email"`
	ValorTotal     float64      `json:"valorTotal"`
	Carrinho       CheckoutCart `json:"carrinho"`
	FormaPagamento string       `json:"formaPagamento"`
	Endereco       Endereco     `json:"endereco"`
}
