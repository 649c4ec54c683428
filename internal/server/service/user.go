package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kropsz/elivraria/internal/models"
	srvmodels "github.com/kropsz/elivraria/internal/server/models"
	"github.com/kropsz/elivraria/internal/server/repo"
	"github.com/kropsz/elivraria/internal/server/transport"
	"github.com/kropsz/elivraria/pkg/hash"
	"github.com/kropsz/elivraria/pkg/logging"
	"gorm.io/gorm"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) Register(ctx context.Context, req transport.CreateUserRequest) (*srvmodels.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	if req.Name == "" || req.Email == "" || req.Senha == "" {
		return nil, fmt.Errorf("%w: name, email and senha required", ErrValidation)
	}

	if _, err := s.Repo.UserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	senhaHash, err := hash.HashPassword(req.Senha)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash senha", "error", err)
		return nil, err
	}

	user := srvmodels.User{Name: req.Name, Email: req.Email, SenhaHash: senhaHash}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID)
	return &user, nil
}

func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*srvmodels.User, error) {
	if req.Email == "" || req.Senha == "" {
		return nil, fmt.Errorf("%w: email and senha required", ErrValidation)
	}

	user, err := s.Repo.UserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.SenhaHash, req.Senha) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Checkout records a payment. The cart items arrive on the wire but are
// transient: only the totals survive, the way the original payments table
// works.
func (s *UserService) Checkout(ctx context.Context, req transport.CheckoutRequest) (*srvmodels.Pagamento, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if !models.FormaPagamento(req.FormaPagamento).Valid() {
		return nil, fmt.Errorf("%w: unknown formaPagamento %q", ErrValidation, req.FormaPagamento)
	}
	if req.ValorTotal < 0 {
		return nil, fmt.Errorf("%w: valorTotal must be >= 0", ErrValidation)
	}

	p := srvmodels.Pagamento{
		User:           req.User,
		Email:          req.Email,
		ValorTotal:     req.ValorTotal,
		FormaPagamento: req.FormaPagamento,
		DataPagamento:  time.Now().UTC().Format("2006-01-02"),
	}
	if err := s.Repo.CreatePagamento(ctx, &p); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("pagamento_recorded", "pagamento_id", p.ID, "email", p.Email, "total", p.ValorTotal)
	return &p, nil
}

func (s *UserService) Pagamentos(ctx context.Context, email string) ([]srvmodels.Pagamento, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	return s.Repo.PagamentosByEmail(ctx, email)
}
