package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kropsz/elivraria/internal/backend"
	"github.com/kropsz/elivraria/internal/cart"
	"github.com/kropsz/elivraria/internal/localstore"
	"github.com/kropsz/elivraria/internal/models"
	"github.com/kropsz/elivraria/internal/notify"
	"github.com/kropsz/elivraria/internal/session"
	"github.com/kropsz/elivraria/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	notifications []notify.Notification
}

func (r *recordingNotifier) Notify(n notify.Notification) {
	r.notifications = append(r.notifications, n)
}

func (r *recordingNotifier) last(t *testing.T) notify.Notification {
	t.Helper()
	require.NotEmpty(t, r.notifications)
	return r.notifications[len(r.notifications)-1]
}

// fixture wires an orchestrator against an in-memory state store and a
// fake backend, counting every checkout request the backend sees.
type fixture struct {
	orchestrator *Orchestrator
	cart         *cart.Store
	sessions     *session.Store
	notifier     *recordingNotifier
	requests     *atomic.Int64
	lastRequest  *models.CheckoutRequest
}

func newFixture(t *testing.T, handler func(c echo.Context) error) *fixture {
	t.Helper()

	f := &fixture{notifier: &recordingNotifier{}, requests: &atomic.Int64{}}

	e := echo.New()
	e.POST("/v1/user/login", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"name": "Maria", "email": "maria@livraria.com"})
	})
	e.POST("/v1/user/checkout", func(c echo.Context) error {
		f.requests.Add(1)
		var req models.CheckoutRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bad body")
		}
		f.lastRequest = &req
		if handler != nil {
			return handler(c)
		}
		return c.NoContent(http.StatusOK)
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	api := backend.NewClient(srv.URL)

	kv, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	logger := logging.New("error")
	f.cart = cart.NewStore(kv, notify.Discard{}, logger)
	f.sessions = session.NewStore(kv, api, logger)
	f.orchestrator = NewOrchestrator(f.sessions, f.cart, api, f.notifier, logger)
	return f
}

func (f *fixture) logIn(t *testing.T) {
	t.Helper()
	_, err := f.sessions.Login(context.Background(), "maria@livraria.com", "segredo")
	require.NoError(t, err)
}

func completeAddress() models.Endereco {
	return models.Endereco{
		Estado: "SP",
		Cidade: "São Paulo",
		Rua:    "Rua das Flores",
		Numero: "123",
		Bairro: "Centro",
	}
}

func TestSubmit_RequiresLoginFirst(t *testing.T) {
	f := newFixture(t, nil)
	f.cart.AddToCart(models.Book{ID: 1, Titulo: "1984", Preco: 45.50}, 1)

	state := f.orchestrator.Submit(context.Background(), completeAddress(), models.CartaoCredito)
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, ReasonNotLoggedIn, f.orchestrator.Reason())
	assert.Equal(t, "Usuário não logado", f.notifier.last(t).Title)
	assert.Zero(t, f.requests.Load(), "precondition failures must not reach the backend")
}

func TestSubmit_RejectsEmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	f.logIn(t)

	state := f.orchestrator.Submit(context.Background(), completeAddress(), models.Pix)
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, ReasonEmptyCart, f.orchestrator.Reason())
	assert.Equal(t, "Carrinho vazio", f.notifier.last(t).Title)
	assert.Zero(t, f.requests.Load())
}

func TestSubmit_RejectsIncompleteAddress(t *testing.T) {
	f := newFixture(t, nil)
	f.logIn(t)
	f.cart.AddToCart(models.Book{ID: 1, Titulo: "1984", Preco: 45.50}, 1)

	endereco := completeAddress()
	endereco.Numero = "   "
	state := f.orchestrator.Submit(context.Background(), endereco, models.Pix)
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, ReasonIncompleteAddress, f.orchestrator.Reason())
	assert.Equal(t, "Endereço incompleto", f.notifier.last(t).Title)
	assert.Zero(t, f.requests.Load())
}

func TestSubmit_EmptyCartOutranksBadAddress(t *testing.T) {
	f := newFixture(t, nil)
	f.logIn(t)

	state := f.orchestrator.Submit(context.Background(), models.Endereco{}, models.Pix)
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, ReasonEmptyCart, f.orchestrator.Reason())
}

func TestQuote_ShippingBoundary(t *testing.T) {
	tests := []struct {
		name         string
		preco        float64
		wantShipping float64
		wantTotal    float64
	}{
		{name: "exactly 100 still pays shipping", preco: 100.00, wantShipping: 15.90, wantTotal: 115.90},
		{name: "just over 100 ships free", preco: 100.01, wantShipping: 0, wantTotal: 100.01},
		{name: "well under threshold", preco: 40.00, wantShipping: 15.90, wantTotal: 55.90},
		{name: "well over threshold", preco: 110.00, wantShipping: 0, wantTotal: 110.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.cart.AddToCart(models.Book{ID: 1, Titulo: "Sapiens", Preco: tt.preco}, 1)

			subtotal, shipping, total := f.orchestrator.Quote()
			assert.InDelta(t, tt.preco, subtotal, 0.001)
			assert.InDelta(t, tt.wantShipping, shipping, 0.001)
			assert.InDelta(t, tt.wantTotal, total, 0.001)
		})
	}
}

func TestSubmit_SuccessClearsCartAndPostsTotalWithShipping(t *testing.T) {
	f := newFixture(t, nil)
	f.logIn(t)
	f.cart.AddToCart(models.Book{ID: 1, Titulo: "1984", Preco: 20.00}, 2)

	state := f.orchestrator.Submit(context.Background(), completeAddress(), models.CartaoCredito)
	require.Equal(t, StateSucceeded, state)
	assert.Equal(t, int64(1), f.requests.Load())
	assert.Zero(t, f.cart.ItemCount())

	require.NotNil(t, f.lastRequest)
	assert.Equal(t, "Maria", f.lastRequest.User)
	assert.Equal(t, "maria@livraria.com", f.lastRequest.Email)
	assert.InDelta(t, 55.90, f.lastRequest.ValorTotal, 0.001)
	assert.Equal(t, models.CartaoCredito, f.lastRequest.FormaPagamento)
	require.Len(t, f.lastRequest.Carrinho.Itens, 1)
	assert.Equal(t, 2, f.lastRequest.Carrinho.Itens[0].Quantity)

	f.orchestrator.Acknowledge()
	assert.Equal(t, StateIdle, f.orchestrator.State())
	assert.Equal(t, ReasonNone, f.orchestrator.Reason())
}

func TestSubmit_FreeShippingTotalPosted(t *testing.T) {
	f := newFixture(t, nil)
	f.logIn(t)
	f.cart.AddToCart(models.Book{ID: 1, Titulo: "Box Tolkien", Preco: 110.00}, 1)

	state := f.orchestrator.Submit(context.Background(), completeAddress(), models.Pix)
	require.Equal(t, StateSucceeded, state)
	require.NotNil(t, f.lastRequest)
	assert.InDelta(t, 110.00, f.lastRequest.ValorTotal, 0.001)
}

func TestSubmit_ServerRejectionLeavesCartUntouched(t *testing.T) {
	f := newFixture(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "forma de pagamento inválida")
	})
	f.logIn(t)
	f.cart.AddToCart(models.Book{ID: 1, Titulo: "1984", Preco: 45.50}, 2)

	state := f.orchestrator.Submit(context.Background(), completeAddress(), models.FormaPagamento("cheque"))
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, ReasonServerRejected, f.orchestrator.Reason())
	assert.Equal(t, 1, f.cart.ItemCount())

	last := f.notifier.last(t)
	assert.Equal(t, "Erro ao finalizar pedido", last.Title)
	assert.Equal(t, "forma de pagamento inválida", last.Description)
}

func TestSubmit_ConnectionErrorLeavesCartUntouched(t *testing.T) {
	kv, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	require.NoError(t, kv.Put("user", []byte(`{"name":"Maria","email":"maria@livraria.com"}`)))

	api := backend.NewClient("http://localhost:1")
	logger := logging.New("error")
	notifier := &recordingNotifier{}
	cartStore := cart.NewStore(kv, notify.Discard{}, logger)
	cartStore.AddToCart(models.Book{ID: 1, Titulo: "1984", Preco: 45.50}, 1)
	sessions := session.NewStore(kv, api, logger)
	o := NewOrchestrator(sessions, cartStore, api, notifier, logger)

	state := o.Submit(context.Background(), completeAddress(), models.Pix)
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, ReasonConnectionError, o.Reason())
	assert.Equal(t, 1, cartStore.ItemCount())
	assert.Equal(t, "Erro de conexão", notifier.last(t).Title)

	o.Acknowledge()
	assert.Equal(t, StateIdle, o.State())
}
