package checkout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kropsz/elivraria/internal/backend"
	"github.com/kropsz/elivraria/internal/cart"
	"github.com/kropsz/elivraria/internal/models"
	"github.com/kropsz/elivraria/internal/notify"
	"github.com/kropsz/elivraria/internal/session"
)

// Shipping is free above the threshold, strictly greater than: a subtotal
// of exactly 100.00 still pays the fee.
const (
	freeShippingOver = 100.0
	shippingFee      = 15.90
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNotLoggedIn       Reason = "not_logged_in"
	ReasonEmptyCart         Reason = "empty_cart"
	ReasonIncompleteAddress Reason = "incomplete_address"
	ReasonServerRejected    Reason = "server_rejected"
	ReasonConnectionError   Reason = "connection_error"
)

// Orchestrator drives one checkout at a time through
// Idle -> Validating -> Submitting -> Succeeded | Failed(reason).
// Preconditions fail fast in a fixed order and nothing is ever retried
// automatically; every failure waits for the user to resubmit.
type Orchestrator struct {
	sessions *session.Store
	cart     *cart.Store
	api      *backend.Client
	notifier notify.Notifier
	logger   *slog.Logger

	state  State
	reason Reason
	busy   bool
}

func NewOrchestrator(sessions *session.Store, cartStore *cart.Store, api *backend.Client, notifier notify.Notifier, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		cart:     cartStore,
		api:      api,
		notifier: notifier,
		logger:   logger,
		state:    StateIdle,
	}
}

func (o *Orchestrator) State() State   { return o.state }
func (o *Orchestrator) Reason() Reason { return o.reason }

// Quote returns subtotal, shipping and total for the current cart.
func (o *Orchestrator) Quote() (subtotal, shipping, total float64) {
	subtotal = o.cart.Total()
	shipping = shippingFee
	if subtotal > freeShippingOver {
		shipping = 0
	}
	return subtotal, shipping, subtotal + shipping
}

// Submit runs one checkout attempt and returns the resulting state. While
// an attempt is in flight further submissions are rejected by the busy
// flag; this is the only reentrancy guard the single-threaded storefront
// needs.
//
// On success the cart is cleared and the orchestrator stays in Succeeded
// until Acknowledge; the caller must not navigate away on its own. On any
// failure the cart is left untouched so the user can retry.
func (o *Orchestrator) Submit(ctx context.Context, endereco models.Endereco, forma models.FormaPagamento) State {
	if o.busy {
		o.logger.Warn("checkout_already_in_flight")
		return o.state
	}

	o.state = StateValidating
	o.reason = ReasonNone

	sess, loggedIn := o.sessions.Current()
	if !loggedIn {
		return o.fail(ReasonNotLoggedIn, "Usuário não logado", "Você precisa estar logado para finalizar a compra.")
	}
	if o.cart.ItemCount() == 0 {
		return o.fail(ReasonEmptyCart, "Carrinho vazio", "Adicione itens ao carrinho antes de finalizar a compra.")
	}
	if !endereco.Complete() {
		return o.fail(ReasonIncompleteAddress, "Endereço incompleto", "Por favor, preencha todos os campos do endereço.")
	}

	o.busy = true
	o.state = StateSubmitting
	defer func() { o.busy = false }()

	_, _, total := o.Quote()
	req := models.CheckoutRequest{
		User:           sess.Name,
		Email:          sess.Email,
		ValorTotal:     total,
		Carrinho:       models.Carrinho{Itens: o.cart.Items()},
		FormaPagamento: forma,
		Endereco:       endereco,
	}

	if err := o.api.PostJSON(ctx, "/v1/user/checkout", req, nil); err != nil {
		var srv *backend.ServerError
		if errors.As(err, &srv) {
			o.logger.Warn("checkout_rejected", "status", srv.Status, "error", err)
			msg := srv.Message
			if msg == "" {
				msg = "Não foi possível processar seu pedido. Tente novamente mais tarde."
			}
			return o.fail(ReasonServerRejected, "Erro ao finalizar pedido", msg)
		}
		o.logger.Warn("checkout_unreachable", "error", err)
		return o.fail(ReasonConnectionError, "Erro de conexão", "Não foi possível conectar ao servidor. Tente novamente mais tarde.")
	}

	o.cart.ClearCart()
	o.state = StateSucceeded
	o.logger.Info("checkout_succeeded", "email", sess.Email, "total", total)
	return o.state
}

// Acknowledge confirms a finished checkout and returns the orchestrator to
// Idle. It is the user closing the confirmation.
func (o *Orchestrator) Acknowledge() {
	if o.state == StateSucceeded || o.state == StateFailed {
		o.state = StateIdle
		o.reason = ReasonNone
	}
}

func (o *Orchestrator) fail(reason Reason, title, description string) State {
	o.state = StateFailed
	o.reason = reason
	o.notifier.Notify(notify.Error(title, description))
	return o.state
}
