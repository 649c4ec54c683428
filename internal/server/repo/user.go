package repo

import (
	"context"

	"github.com/kropsz/elivraria/internal/server/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreatePagamento(ctx context.Context, p *models.Pagamento) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) PagamentosByEmail(ctx context.Context, email string) ([]models.Pagamento, error) {
	var payments []models.Pagamento
	if err := r.DB.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
