package repo

import (
	"PartsCatalog/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// PartFilter: параметры выборки каталога.
type PartFilter struct {
	Query  string // пустая строка: без фильтра
	Limit  int
	Offset int
}

// PartRepository: контракт доступа к таблице parts.
type PartRepository interface {
	CreatePart(ctx context.Context, part *model.Part) error
	GetPart(ctx context.Context, id int64) (*model.Part, error)
	// UpdatePart перезаписывает переданные колонки. Несуществующий id: не ошибка.
	UpdatePart(ctx context.Context, id int64, updates map[string]any) error
	DeletePart(ctx context.Context, id int64) error
	// ListParts возвращает страницу (новые первыми) и общее число подходящих строк.
	ListParts(ctx context.Context, f PartFilter) ([]model.Part, int64, error)
}

type partRepo struct {
	db *gorm.DB
}

// NewPartRepository создаёт реализацию репозитория каталога.
func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepo{db: db}
}

func (r *partRepo) CreatePart(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *partRepo) GetPart(ctx context.Context, id int64) (*model.Part, error) {
	var p model.Part
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepo) UpdatePart(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Part{}).Where("id = ?", id).Updates(updates).Error
}

func (r *partRepo) DeletePart(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Part{}, id).Error
}

func (r *partRepo) ListParts(ctx context.Context, f PartFilter) ([]model.Part, int64, error) {
	// один и тот же предикат для выборки страницы и для подсчёта
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Part{})
	}
	rowsQ, countQ := scope(), scope()
	if f.Query != "" {
		where, args, err := searchPredicate(f.Query)
		if err != nil {
			return nil, 0, fmt.Errorf("build search predicate: %w", err)
		}
		rowsQ = rowsQ.Where(where, args...)
		countQ = countQ.Where(where, args...)
	}

	parts := []model.Part{}
	if err := rowsQ.Order("id DESC").Limit(f.Limit).Offset(f.Offset).Find(&parts).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}
