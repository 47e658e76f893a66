package repositories

import (
	"context"

	"github.com/amco/vacancies/internal/entities"
	"gorm.io/gorm"
)

// ActionHistory is append-only. GetByEntity exists for tests and manual inspection;
// no route reads the history.
type ActionHistory struct {
	db *gorm.DB
}

func NewActionHistoryRepository(db *gorm.DB) *ActionHistory {
	return &ActionHistory{db: db}
}

func (repo *ActionHistory) Add(ctx context.Context, entry *entities.ActionHistory) error {
	return repo.db.WithContext(ctx).Create(entry).Error
}

func (repo *ActionHistory) GetByEntity(ctx context.Context, entityType string, entityID uint) ([]entities.ActionHistory, error) {
	var entries []entities.ActionHistory
	if err := repo.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
