package orm

import (
	"time"

	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap builds a Query over an existing *gorm.DB, typically a transaction
// handle obtained from Transaction.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// Preload eager-loads the named association on the next read.
func (q *Query) Preload(name string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(name, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// Save upserts v together with its owned associations, so appending a child
// to an aggregate root and saving the root persists both.
func (q *Query) Save(v interface{}) error {
	return q.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(v).Error
}

// SaveOmitAssociations upserts only v's own columns, leaving child rows to
// whoever owns them.
func (q *Query) SaveOmitAssociations(v interface{}) error {
	return q.db.Omit(clause.Associations).Save(v).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// Transaction runs fn inside one database transaction. The Query passed to
// fn is bound to that transaction; returning an error rolls it back.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(Wrap(tx))
	})
}

func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
