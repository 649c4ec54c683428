package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	LibraryHandler *LibraryHTTP
	UserHandler    *UserHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	library := e.Group("/v1/library")
	library.GET("", d.LibraryHandler.ListBooks)
	library.GET("/books/genre", d.LibraryHandler.BooksByGenre)
	library.GET("/books/search", d.LibraryHandler.SearchBooks)
	library.GET("/books/:id", d.LibraryHandler.GetBook)

	user := e.Group("/v1/user")
	user.POST("/create", d.UserHandler.Register)
	user.POST("/login", d.UserHandler.Login)
	user.POST("/checkout", d.UserHandler.Checkout)
	user.GET("/pagamentos/:email", d.UserHandler.Pagamentos)
}
