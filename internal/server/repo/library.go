package repo

import (
	"context"
	"strings"

	"github.com/kropsz/elivraria/internal/server/models"
)

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) BooksByGenre(ctx context.Context, genero string) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Where("genero = ?", genero).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks matches titulo or autor, containing and case-insensitive,
// like the JPA ContainingIgnoreCase queries it replaces.
func (r *GormRepo) SearchBooks(ctx context.Context, titulo, autor string) ([]models.Book, error) {
	var books []models.Book
	like := func(s string) string { return "%" + strings.ToLower(s) + "%" }
	err := r.DB.WithContext(ctx).
		Where("LOWER(titulo) LIKE ? OR LOWER(autor) LIKE ?", like(titulo), like(autor)).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) CountBooks(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Book{}).Count(&total).Error
	return total, err
}

func (r *GormRepo) CreateBooks(ctx context.Context, books []models.Book) error {
	return r.DB.WithContext(ctx).Create(&books).Error
}
