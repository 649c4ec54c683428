package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/kropsz/elivraria/internal/backend"
	"github.com/kropsz/elivraria/internal/models"
	"github.com/kropsz/elivraria/internal/notify"
)

// Client reads the order history. Same contract as the catalog client:
// errors turn into a notification and an empty list.
type Client struct {
	api      *backend.Client
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewClient(api *backend.Client, notifier notify.Notifier, logger *slog.Logger) *Client {
	return &Client{api: api, notifier: notifier, logger: logger}
}

// History lists the payments recorded for that email, newest first as the
// backend returns them.
func (c *Client) History(ctx context.Context, email string) []models.Payment {
	var payments []models.Payment
	path := "/v1/user/pagamentos/" + url.PathEscape(email)
	if err := c.api.GetJSON(ctx, path, &payments); err != nil {
		c.logger.Warn("order_history_failed", "error", err)
		if errors.Is(err, backend.ErrConnection) {
			c.notifier.Notify(notify.Error("Erro de conexão", "Não foi possível conectar ao servidor. Tente novamente mais tarde."))
		} else {
			c.notifier.Notify(notify.Error("Erro ao buscar pedidos", "Não foi possível carregar seu histórico de pedidos."))
		}
		return nil
	}
	return payments
}
