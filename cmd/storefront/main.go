package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kropsz/elivraria/internal/backend"
	"github.com/kropsz/elivraria/internal/cart"
	"github.com/kropsz/elivraria/internal/catalog"
	"github.com/kropsz/elivraria/internal/checkout"
	"github.com/kropsz/elivraria/internal/config"
	"github.com/kropsz/elivraria/internal/localstore"
	"github.com/kropsz/elivraria/internal/models"
	"github.com/kropsz/elivraria/internal/notify"
	"github.com/kropsz/elivraria/internal/orders"
	"github.com/kropsz/elivraria/internal/session"
	"github.com/kropsz/elivraria/pkg/logging"
)

// storefront is the terminal rendition of the e-Livraria pages: browse,
// search, detail view, cart, checkout and account. All state lives in the
// injected stores; this file only reads input and prints.
type storefront struct {
	in       *bufio.Scanner
	out      *os.File
	sessions *session.Store
	cart     *cart.Store
	catalog  *catalog.Client
	orders   *orders.Client
	checkout *checkout.Orchestrator
}

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "storefront")
	slog.SetDefault(logger)

	kv, err := localstore.Open(cfg.StatePath)
	if err != nil {
		log.Fatalf("open client state: %v", err)
	}
	defer kv.Close()

	notifier := &notify.Terminal{Out: os.Stdout, Logger: logger}
	api := backend.NewClient(cfg.BackendURL)

	cartStore := cart.NewStore(kv, notifier, logger)
	sessions := session.NewStore(kv, api, logger)

	app := &storefront{
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		sessions: sessions,
		cart:     cartStore,
		catalog:  catalog.NewClient(api, notifier, logger),
		orders:   orders.NewClient(api, notifier, logger),
		checkout: checkout.NewOrchestrator(sessions, cartStore, api, notifier, logger),
	}
	app.run()
}

func (s *storefront) run() {
	fmt.Fprintln(s.out, "e-Livraria. Digite 'help' para ver os comandos.")
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		ctx := context.Background()
		switch cmd {
		case "help":
			s.printHelp()
		case "list":
			s.printBooks(s.catalog.ListBooks(ctx))
		case "genre":
			s.printBooks(s.catalog.BooksByGenre(ctx, arg))
		case "search":
			books := s.catalog.SearchBooks(ctx, arg)
			if len(books) == 0 {
				fmt.Fprintf(s.out, "Não encontramos livros para %q.\n", arg)
				continue
			}
			s.printBooks(books)
		case "book":
			s.showBook(ctx, arg)
		case "add":
			s.addToCart(ctx, arg)
		case "remove":
			if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
				s.cart.RemoveFromCart(id)
			}
		case "qty":
			s.updateQuantity(arg)
		case "cart":
			s.showCart()
		case "clear":
			s.cart.ClearCart()
		case "login":
			s.login(ctx)
		case "register":
			s.register(ctx)
		case "logout":
			s.sessions.Logout()
			fmt.Fprintln(s.out, "Você saiu da sua conta com sucesso.")
		case "profile":
			s.showProfile()
		case "orders":
			s.showOrders(ctx)
		case "checkout":
			s.runCheckout(ctx)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(s.out, "comando desconhecido: %s\n", cmd)
		}
	}
}

func (s *storefront) printHelp() {
	fmt.Fprint(s.out, `comandos:
  list                 todos os livros
  genre <genero>       livros por gênero
  search <termo>       busca por título ou autor
  book <id>            detalhes e livros relacionados
  add <id> [qtd]       adicionar ao carrinho
  remove <id>          remover do carrinho
  qty <id> <qtd>       alterar quantidade
  cart                 ver carrinho
  clear                limpar carrinho
  login / register / logout / profile / orders
  checkout             finalizar compra
  quit                 sair
`)
}

func (s *storefront) printBooks(books []models.Book) {
	if len(books) == 0 {
		fmt.Fprintln(s.out, "Nenhum livro encontrado.")
		return
	}
	for _, b := range books {
		fmt.Fprintf(s.out, "%4d  %-40s %-24s %-12s R$ %.2f\n", b.ID, b.Titulo, b.Autor, b.Genero, b.Preco)
	}
}

func (s *storefront) showBook(ctx context.Context, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "uso: book <id>")
		return
	}
	book, ok := s.catalog.GetBook(ctx, id)
	if !ok {
		fmt.Fprintln(s.out, "O livro que você está procurando não foi encontrado.")
		return
	}
	fmt.Fprintf(s.out, "%s\n%s • %s • %d\nEditora: %s  Páginas: %d\nR$ %.2f\n",
		book.Titulo, book.Genero, book.Autor, book.Ano, book.Editora, book.Paginas, book.Preco)

	if related := s.catalog.RelatedBooks(ctx, book); len(related) > 0 {
		fmt.Fprintln(s.out, "\nLivros relacionados:")
		s.printBooks(related)
	}
}

func (s *storefront) addToCart(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		fmt.Fprintln(s.out, "uso: add <id> [qtd]")
		return
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "uso: add <id> [qtd]")
		return
	}
	quantity := 1
	if len(fields) > 1 {
		if q, err := strconv.Atoi(fields[1]); err == nil {
			quantity = q
		}
	}
	book, ok := s.catalog.GetBook(ctx, id)
	if !ok {
		return
	}
	s.cart.AddToCart(book, quantity)
}

func (s *storefront) updateQuantity(arg string) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "uso: qty <id> <qtd>")
		return
	}
	id, err1 := strconv.ParseInt(fields[0], 10, 64)
	quantity, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(s.out, "uso: qty <id> <qtd>")
		return
	}
	s.cart.UpdateQuantity(id, quantity)
}

func (s *storefront) showCart() {
	items := s.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Seu carrinho está vazio.")
		return
	}
	for _, it := range items {
		fmt.Fprintf(s.out, "%4d  %-40s %2dx R$ %.2f\n", it.ID, it.Titulo, it.EffectiveQuantity(), it.Preco)
	}
	subtotal, shipping, total := s.checkout.Quote()
	frete := fmt.Sprintf("R$ %.2f", shipping)
	if shipping == 0 {
		frete = "Grátis"
	}
	fmt.Fprintf(s.out, "Subtotal: R$ %.2f  Frete: %s  Total: R$ %.2f\n", subtotal, frete, total)
}

func (s *storefront) prompt(label string) string {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *storefront) login(ctx context.Context) {
	email := s.prompt("Email")
	senha := s.prompt("Senha")

	sess, err := s.sessions.Login(ctx, email, senha)
	if err != nil {
		s.reportAccountError(err, "Erro ao fazer login", "Email ou senha incorretos.")
		return
	}
	fmt.Fprintf(s.out, "Login realizado com sucesso! Bem-vindo à e-Livraria, %s.\n", displayName(sess))
}

func (s *storefront) register(ctx context.Context) {
	name := s.prompt("Nome")
	email := s.prompt("Email")
	senha := s.prompt("Senha")
	confirm := s.prompt("Confirmar senha")
	if senha != confirm {
		fmt.Fprintln(s.out, "A senha e a confirmação de senha devem ser iguais.")
		return
	}

	sess, err := s.sessions.Register(ctx, name, email, senha)
	if err != nil {
		s.reportAccountError(err, "Erro ao cadastrar", "Não foi possível realizar o cadastro.")
		return
	}
	fmt.Fprintf(s.out, "Cadastro realizado com sucesso! Bem-vindo à e-Livraria, %s.\n", displayName(sess))
}

func (s *storefront) reportAccountError(err error, title, fallback string) {
	switch {
	case errors.Is(err, session.ErrValidation):
		fmt.Fprintln(s.out, "Por favor, preencha todos os campos.")
	case errors.Is(err, backend.ErrConnection):
		fmt.Fprintln(s.out, "Não foi possível conectar ao servidor. Tente novamente mais tarde.")
	default:
		var srv *backend.ServerError
		if errors.As(err, &srv) && srv.Message != "" {
			fmt.Fprintf(s.out, "%s: %s\n", title, srv.Message)
			return
		}
		fmt.Fprintf(s.out, "%s: %s\n", title, fallback)
	}
}

func (s *storefront) showProfile() {
	sess, ok := s.sessions.Current()
	if !ok {
		fmt.Fprintln(s.out, "Você precisa estar logado para acessar esta página.")
		return
	}
	fmt.Fprintf(s.out, "Nome: %s\nEmail: %s\n", displayName(sess), sess.Email)
}

func (s *storefront) showOrders(ctx context.Context) {
	sess, ok := s.sessions.Current()
	if !ok {
		fmt.Fprintln(s.out, "Você precisa estar logado para acessar esta página.")
		return
	}
	payments := s.orders.History(ctx, sess.Email)
	if len(payments) == 0 {
		fmt.Fprintln(s.out, "Você ainda não realizou nenhum pedido em nossa loja.")
		return
	}
	for _, p := range payments {
		data := p.DataPagamento
		if data == "" {
			data = "Data não disponível"
		}
		fmt.Fprintf(s.out, "Pedido #%d  %s  R$ %.2f  %s\n", p.ID, data, p.ValorTotal, p.FormaPagamento)
	}
}

func (s *storefront) runCheckout(ctx context.Context) {
	endereco := models.Endereco{
		Estado: s.prompt("Estado"),
		Cidade: s.prompt("Cidade"),
		Rua:    s.prompt("Rua"),
		Numero: s.prompt("Número"),
		Bairro: s.prompt("Bairro"),
	}

	forma := models.CartaoCredito
	switch s.prompt("Forma de pagamento (1=Crédito 2=Débito 3=PIX)") {
	case "2":
		forma = models.CartaoDebito
	case "3":
		forma = models.Pix
	}

	state := s.checkout.Submit(ctx, endereco, forma)
	if state != checkout.StateSucceeded {
		return
	}

	fmt.Fprintln(s.out, "Pedido Finalizado com Sucesso!")
	fmt.Fprintln(s.out, "Seu pedido foi processado e será enviado em breve para o endereço informado.")
	s.prompt("Pressione Enter para continuar comprando")
	s.checkout.Acknowledge()
}

func displayName(sess models.Session) string {
	if sess.Name != "" {
		return sess.Name
	}
	return sess.Email
}
