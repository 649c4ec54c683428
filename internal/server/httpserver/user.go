package httpserver

import (
	"errors"
	"net/http"

	"github.com/kropsz/elivraria/internal/server/service"
	"github.com/kropsz/elivraria/internal/server/transport"
	"github.com/kropsz/elivraria/pkg/logging"
	"github.com/labstack/echo/v4"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name, email and senha required")
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("register_error", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Login(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("login_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "email and senha required")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_error", "status", 401, "email", req.Email)
			return echo.NewHTTPError(http.StatusUnauthorized, "Email ou senha incorretos.")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot login")
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (h *UserHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Checkout(ctx, req); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("checkout_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot process checkout")
	}

	l.Info("checkout_success", "email", req.Email)
	return c.NoContent(http.StatusOK)
}

func (h *UserHTTP) Pagamentos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.pagamentos")

	payments, err := h.Svc.Pagamentos(ctx, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("pagamentos_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "email required")
		}
		l.Error("pagamentos_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list pagamentos")
	}
	return c.JSON(http.StatusOK, payments)
}
