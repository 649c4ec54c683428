package repo

import (
	"github.com/kropsz/elivraria/internal/server/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Book{}, &models.User{}, &models.Pagamento{})
}
