// Package orm provides a small gorm-backed TTL cache for upstream API
// responses. The default DSN is an in-memory sqlite database, so cached
// entries live no longer than the process unless the operator points the
// cache at a file.
package orm

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// APICache stores cached API responses
type APICache struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// Cache wraps the database handle
type Cache struct {
	db *gorm.DB
}

// Open opens (and migrates) a cache database at the given sqlite DSN
func Open(dsn string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&APICache{}); err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Get retrieves a valid (unexpired) cache entry
func (c *Cache) Get(key string) ([]byte, bool) {
	var entry APICache
	err := c.db.Where("key = ? AND expires_at > ?", key, time.Now()).First(&entry).Error
	if err != nil {
		return nil, false
	}
	return entry.Value, true
}

// Set upserts a cache entry with a TTL
func (c *Cache) Set(key string, value []byte, ttl time.Duration) error {
	entry := APICache{
		Key:       key,
		Value:     value,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	return c.db.Save(&entry).Error
}

// Cleanup removes expired entries
func (c *Cache) Cleanup() error {
	return c.db.Where("expires_at < ?", time.Now()).Delete(&APICache{}).Error
}
