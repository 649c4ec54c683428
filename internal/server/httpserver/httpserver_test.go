package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kropsz/elivraria/internal/server/repo"
	"github.com/kropsz/elivraria/internal/server/service"
	"github.com/kropsz/elivraria/internal/server/transport"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	r := &repo.GormRepo{DB: db}
	library := &service.LibraryService{Repo: r}
	require.NoError(t, library.Seed(context.Background()))

	e := echo.New()
	Register(e, &Deps{
		LibraryHandler: &LibraryHTTP{Svc: library},
		UserHandler:    &UserHTTP{Svc: &service.UserService{Repo: r}},
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type bookJSON struct {
	ID     int64   `json:"id"`
	Titulo string  `json:"titulo"`
	Autor  string  `json:"autor"`
	Genero string  `json:"genero"`
	Preco  float64 `json:"preco"`
}

func TestListBooks_ReturnsSeededCatalog(t *testing.T) {
	srv := newTestServer(t)

	var books []bookJSON
	status := getJSON(t, srv.URL+"/v1/library", &books)
	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, books)
	assert.Equal(t, "1984", books[0].Titulo)
}

func TestGetBook(t *testing.T) {
	srv := newTestServer(t)

	var book bookJSON
	status := getJSON(t, srv.URL+"/v1/library/books/1", &book)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), book.ID)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/v1/library/books/9999", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/library/books/abc", nil))
}

func TestBooksByGenre(t *testing.T) {
	srv := newTestServer(t)

	var books []bookJSON
	status := getJSON(t, srv.URL+"/v1/library/books/genre?genero=Distopia", &books)
	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, books)
	for _, b := range books {
		assert.Equal(t, "Distopia", b.Genero)
	}

	// Legacy clients sent the parameter as "genre".
	var legacy []bookJSON
	status = getJSON(t, srv.URL+"/v1/library/books/genre?genre=Distopia", &legacy)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, books, legacy)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/library/books/genre", nil))
}

func TestSearchBooks(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		query      string
		wantTitulo string
		wantEmpty  bool
	}{
		{name: "titulo match is case-insensitive", query: "titulo=hobbit&autor=hobbit", wantTitulo: "O Hobbit"},
		{name: "autor match", query: "titulo=orwell&autor=orwell", wantTitulo: "1984"},
		{name: "no match", query: "titulo=xyzzy&autor=xyzzy", wantEmpty: true},
		{name: "both terms empty returns empty list", query: "titulo=&autor=", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var books []bookJSON
			status := getJSON(t, srv.URL+"/v1/library/books/search?"+tt.query, &books)
			assert.Equal(t, http.StatusOK, status)
			if tt.wantEmpty {
				assert.Empty(t, books)
				return
			}
			require.Len(t, books, 1)
			assert.Equal(t, tt.wantTitulo, books[0].Titulo)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	var created transport.UserResponse
	status := postJSON(t, srv.URL+"/v1/user/create", transport.CreateUserRequest{
		Name: "Maria", Email: "maria@livraria.com", Senha: "segredo",
	}, &created)
	require.Equal(t, http.StatusOK, status)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Maria", created.Name)

	// Same email again conflicts.
	status = postJSON(t, srv.URL+"/v1/user/create", transport.CreateUserRequest{
		Name: "Outra Maria", Email: "maria@livraria.com", Senha: "outra",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Missing fields are rejected.
	status = postJSON(t, srv.URL+"/v1/user/create", transport.CreateUserRequest{Email: "x@y.z"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var logged transport.UserResponse
	status = postJSON(t, srv.URL+"/v1/user/login", transport.LoginRequest{
		Email: "maria@livraria.com", Senha: "segredo",
	}, &logged)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, logged.ID)

	status = postJSON(t, srv.URL+"/v1/user/login", transport.LoginRequest{
		Email: "maria@livraria.com", Senha: "errada",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = postJSON(t, srv.URL+"/v1/user/login", transport.LoginRequest{
		Email: "ninguem@livraria.com", Senha: "segredo",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCheckoutAndPagamentos(t *testing.T) {
	srv := newTestServer(t)

	req := transport.CheckoutRequest{
		User:       "Maria",
		Email:      "maria@livraria.com",
		ValorTotal: 55.90,
		Carrinho: transport.CheckoutCart{Itens: []transport.CheckoutItem{
			{ID: 1, Titulo: "1984", Preco: 20.00, Quantity: 2},
		}},
		FormaPagamento: "PIX",
		Endereco: transport.Endereco{
			Estado: "SP", Cidade: "São Paulo", Rua: "Rua das Flores", Numero: "123", Bairro: "Centro",
		},
	}
	status := postJSON(t, srv.URL+"/v1/user/checkout", req, nil)
	require.Equal(t, http.StatusOK, status)

	var payments []map[string]any
	status = getJSON(t, srv.URL+"/v1/user/pagamentos/"+"maria@livraria.com", &payments)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, payments, 1)
	assert.Equal(t, "Maria", payments[0]["user"])
	assert.InDelta(t, 55.90, payments[0]["valorTotal"].(float64), 0.001)
	assert.Equal(t, "PIX", payments[0]["formaPagamento"])
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), payments[0]["dataPagamento"])

	// Other accounts see nothing.
	var other []map[string]any
	status = getJSON(t, srv.URL+"/v1/user/pagamentos/outra@livraria.com", &other)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, other)
}

func TestCheckout_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		req  transport.CheckoutRequest
	}{
		{name: "missing email", req: transport.CheckoutRequest{FormaPagamento: "PIX", ValorTotal: 10}},
		{name: "unknown forma de pagamento", req: transport.CheckoutRequest{Email: "a@b.c", FormaPagamento: "CHEQUE", ValorTotal: 10}},
		{name: "negative total", req: transport.CheckoutRequest{Email: "a@b.c", FormaPagamento: "PIX", ValorTotal: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := postJSON(t, srv.URL+"/v1/user/checkout", tt.req, nil)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+path, nil), fmt.Sprintf("path %s", path))
	}
}
