package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kropsz/elivraria/internal/server/service"
	"github.com/kropsz/elivraria/pkg/logging"
	"github.com/labstack/echo/v4"
)

type LibraryHTTP struct {
	Svc *service.LibraryService
}

func (h *LibraryHTTP) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "library.list")

	books, err := h.Svc.ListBooks(ctx)
	if err != nil {
		l.Error("list_books_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list books")
	}
	return c.JSON(http.StatusOK, books)
}

func (h *LibraryHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "library.get_book")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_book_error", "status", 400, "reason", "id not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_book_error", "status", 404, "book_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("get_book_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get book")
	}
	return c.JSON(http.StatusOK, book)
}

func (h *LibraryHTTP) BooksByGenre(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "library.by_genre")

	// Older storefront builds sent "genre" instead of "genero".
	genero := c.QueryParam("genero")
	if genero == "" {
		genero = c.QueryParam("genre")
	}

	books, err := h.Svc.BooksByGenre(ctx, genero)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("by_genre_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "genero required")
		}
		l.Error("by_genre_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot filter books")
	}
	return c.JSON(http.StatusOK, books)
}

func (h *LibraryHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "library.search")

	books, err := h.Svc.SearchBooks(ctx, c.QueryParam("titulo"), c.QueryParam("autor"))
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search books")
	}
	return c.JSON(http.StatusOK, books)
}
