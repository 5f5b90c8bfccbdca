package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentModel is the GORM model for the documents table.
type DocumentModel struct {
	ID         string    `gorm:"type:varchar(128);primaryKey"`
	Collection string    `gorm:"type:varchar(64);primaryKey;index"`
	Data       string    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (DocumentModel) TableName() string { return "documents" }

// GormStore implements Store on PostgreSQL jsonb.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the documents table.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&DocumentModel{})
}

// Create inserts a document under a generated id.
func (s *GormStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	_, raw, err := normalize(data)
	if err != nil {
		return "", err
	}
	model := DocumentModel{ID: uuid.NewString(), Collection: collection, Data: string(raw)}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", fmt.Errorf("create %s document: %w", collection, err)
	}
	return model.ID, nil
}

// Put writes a document under id, replacing any existing one.
func (s *GormStore) Put(ctx context.Context, collection, id string, data map[string]any) error {
	_, raw, err := normalize(data)
	if err != nil {
		return err
	}
	model := DocumentModel{ID: id, Collection: collection, Data: string(raw)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "collection"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get returns one document.
func (s *GormStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var model DocumentModel
	err := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return toDocument(&model)
}

// Query returns the documents matching q. Filters and ordering apply to
// top-level fields compared as text.
func (s *GormStore) Query(ctx context.Context, q Query) ([]Document, error) {
	tx := s.db.WithContext(ctx).Where("collection = ?", q.Collection)
	for _, f := range q.Filters {
		if err := validateFilter(f); err != nil {
			return nil, err
		}
		switch f.Op {
		case OpEqual:
			tx = tx.Where("data->>? = ?", f.Field, fmt.Sprint(f.Value))
		case OpIn:
			values := f.Value.([]string)
			if len(values) == 0 {
				return []Document{}, nil
			}
			tx = tx.Where("data->>? IN ?", f.Field, values)
		}
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		tx = tx.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "data->>? " + dir,
			Vars:               []any{q.OrderBy},
			WithoutParentheses: true,
		}})
	} else {
		tx = tx.Order("created_at ASC")
	}

	var models []DocumentModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	docs := make([]Document, 0, len(models))
	for i := range models {
		doc, err := toDocument(&models[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes one document.
func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).Delete(&DocumentModel{})
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of documents in collection.
func (s *GormStore) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&DocumentModel{}).Where("collection = ?", collection).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func toDocument(m *DocumentModel) (Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
		return Document{}, fmt.Errorf("document %s/%s: %w", m.Collection, m.ID, err)
	}
	return Document{ID: m.ID, Collection: m.Collection, Data: data, CreatedAt: m.CreatedAt}, nil
}
