package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/kropsz/elivraria/internal/backend"
	"github.com/kropsz/elivraria/internal/models"
	"github.com/kropsz/elivraria/internal/notify"
)

const relatedLimit = 4

// Client wraps the read-only catalog surface of the backend. Every
// operation is stateless and independently fallible: failures become a
// user notification plus an empty result, never an error value the
// presentation layer has to handle.
type Client struct {
	api      *backend.Client
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewClient(api *backend.Client, notifier notify.Notifier, logger *slog.Logger) *Client {
	return &Client{api: api, notifier: notifier, logger: logger}
}

// ListBooks fetches the whole catalog.
func (c *Client) ListBooks(ctx context.Context) []models.Book {
	var books []models.Book
	if err := c.api.GetJSON(ctx, "/v1/library", &books); err != nil {
		c.fail(err, "Erro ao buscar livros", "Não foi possível carregar os livros. Tente novamente mais tarde.")
		return nil
	}
	return books
}

// GetBook fetches one book, reporting whether it was found. A 404 and a
// failed request both come back as not found.
func (c *Client) GetBook(ctx context.Context, id int64) (models.Book, bool) {
	var book models.Book
	path := fmt.Sprintf("/v1/library/books/%d", id)
	if err := c.api.GetJSON(ctx, path, &book); err != nil {
		c.fail(err, "Erro ao buscar detalhes do livro", "Não foi possível carregar os detalhes do livro. Tente novamente mais tarde.")
		return models.Book{}, false
	}
	return book, true
}

// BooksByGenre fetches the catalog filtered to one genre.
func (c *Client) BooksByGenre(ctx context.Context, genero string) []models.Book {
	var books []models.Book
	path := "/v1/library/books/genre?genero=" + url.QueryEscape(genero)
	if err := c.api.GetJSON(ctx, path, &books); err != nil {
		c.fail(err, "Erro ao buscar livros", "Não foi possível carregar os livros. Tente novamente mais tarde.")
		return nil
	}
	return books
}

// SearchBooks matches the query against title and author, the way the
// storefront's single search box does.
func (c *Client) SearchBooks(ctx context.Context, query string) []models.Book {
	var books []models.Book
	q := url.QueryEscape(query)
	path := "/v1/library/books/search?titulo=" + q + "&autor=" + q
	if err := c.api.GetJSON(ctx, path, &books); err != nil {
		c.fail(err, "Erro ao buscar livros", "Não foi possível realizar a busca. Tente novamente mais tarde.")
		return nil
	}
	return books
}

// RelatedBooks fetches up to four other books sharing the given book's
// genre. It enriches the detail view, so its failures are logged but never
// surfaced.
func (c *Client) RelatedBooks(ctx context.Context, book models.Book) []models.Book {
	if book.Genero == "" {
		return nil
	}

	var books []models.Book
	path := "/v1/library/books/genre?genero=" + url.QueryEscape(book.Genero)
	if err := c.api.GetJSON(ctx, path, &books); err != nil {
		c.logger.Warn("related_books_failed", "book_id", book.ID, "error", err)
		return nil
	}

	related := make([]models.Book, 0, relatedLimit)
	for _, b := range books {
		if b.ID == book.ID {
			continue
		}
		related = append(related, b)
		if len(related) == relatedLimit {
			break
		}
	}
	return related
}

func (c *Client) fail(err error, title, description string) {
	if errors.Is(err, backend.ErrConnection) {
		c.logger.Warn("catalog_request_failed", "error", err)
		c.notifier.Notify(notify.Error("Erro de conexão", "Não foi possível conectar ao servidor. Tente novamente mais tarde."))
		return
	}
	c.logger.Warn("catalog_request_failed", "error", err)
	c.notifier.Notify(notify.Error(title, description))
}
