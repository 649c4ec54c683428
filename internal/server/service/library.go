package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kropsz/elivraria/internal/server/models"
	"github.com/kropsz/elivraria/internal/server/repo"
	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type LibraryService struct {
	Repo *repo.GormRepo
}

func (s *LibraryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.Repo.ListBooks(ctx)
}

func (s *LibraryService) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return book, err
}

func (s *LibraryService) BooksByGenre(ctx context.Context, genero string) ([]models.Book, error) {
	if genero == "" {
		return nil, fmt.Errorf("%w: genero required", ErrValidation)
	}
	return s.Repo.BooksByGenre(ctx, genero)
}

// SearchBooks with both terms empty returns an empty list rather than the
// whole catalog.
func (s *LibraryService) SearchBooks(ctx context.Context, titulo, autor string) ([]models.Book, error) {
	if titulo == "" && autor == "" {
		return []models.Book{}, nil
	}
	return s.Repo.SearchBooks(ctx, titulo, autor)
}

// Seed fills an empty catalog so a fresh dev backend has something to
// browse.
func (s *LibraryService) Seed(ctx context.Context) error {
	total, err := s.Repo.CountBooks(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	return s.Repo.CreateBooks(ctx, seedBooks())
}

func seedBooks() []models.Book {
	return []models.Book{
		{Titulo: "1984", Autor: "George Orwell", Editora: "Companhia das Letras", Genero: "Distopia", Ano: 1949, Paginas: 416, Preco: 54.90},
		{Titulo: "Admirável Mundo Novo", Autor: "Aldous Huxley", Editora: "Biblioteca Azul", Genero: "Distopia", Ano: 1932, Paginas: 312, Preco: 49.90},
		{Titulo: "Fahrenheit 451", Autor: "Ray Bradbury", Editora: "Biblioteca Azul", Genero: "Distopia", Ano: 1953, Paginas: 224, Preco: 44.90},
		{Titulo: "Laranja Mecânica", Autor: "Anthony Burgess", Editora: "Aleph", Genero: "Distopia", Ano: 1962, Paginas: 240, Preco: 52.00},
		{Titulo: "Dom Casmurro", Autor: "Machado de Assis", Editora: "Penguin", Genero: "Romance", Ano: 1899, Paginas: 368, Preco: 34.90},
		{Titulo: "Orgulho e Preconceito", Autor: "Jane Austen", Editora: "Martin Claret", Genero: "Romance", Ano: 1813, Paginas: 424, Preco: 39.90},
		{Titulo: "O Senhor dos Anéis", Autor: "J. R. R. Tolkien", Editora: "HarperCollins", Genero: "Fantasia", Ano: 1954, Paginas: 1216, Preco: 129.90},
		{Titulo: "O Hobbit", Autor: "J. R. R. Tolkien", Editora: "HarperCollins", Genero: "Fantasia", Ano: 1937, Paginas: 328, Preco: 59.90},
		{Titulo: "A Ilha do Tesouro", Autor: "Robert Louis Stevenson", Editora: "Zahar", Genero: "Aventura", Ano: 1883, Paginas: 304, Preco: 42.50},
		{Titulo: "O Chamado de Cthulhu", Autor: "H. P. Lovecraft", Editora: "DarkSide", Genero: "Terror", Ano: 1928, Paginas: 160, Preco: 46.90},
		{Titulo: "A República", Autor: "Platão", Editora: "Penguin", Genero: "Filosofia", Ano: -375, Paginas: 512, Preco: 49.90},
		{Titulo: "Sapiens", Autor: "Yuval Noah Harari", Editora: "L&PM", Genero: "Historia", Ano: 2011, Paginas: 464, Preco: 64.90},
	}
}
