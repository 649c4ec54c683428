package localstore

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted blob. Values are versionless JSON snapshots owned
// entirely by their writers; this layer never inspects them.
type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value []byte `gorm:"not null"`
}

func (Entry) TableName() string { return "client_state" }

// Store is the durable keyed client storage the cart and session stores
// mirror themselves into. It plays the role a browser's localStorage plays
// for the web storefront.
type Store struct {
	DB *gorm.DB
}

// Open opens (and migrates) the store at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open client state at %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate client state: %w", err)
	}
	return &Store{DB: db}, nil
}

// Get returns the blob stored under key, reporting whether one existed.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var e Entry
	if err := s.DB.Where("key = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return e.Value, true, nil
}

// Put overwrites the blob stored under key.
func (s *Store) Put(key string, value []byte) error {
	e := Entry{Key: key, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&e).Error
}

// Delete removes the blob stored under key. Deleting an absent key is not
// an error.
func (s *Store) Delete(key string) error {
	return s.DB.Where("key = ?", key).Delete(&Entry{}).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
