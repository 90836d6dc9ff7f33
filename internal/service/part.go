package service

import (
	"PartsCatalog/internal/model"
	"PartsCatalog/internal/repo"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ImageStore: хранилище загруженных изображений (см. repo/fs).
type ImageStore interface {
	Save(r io.Reader) (string, error)
	Remove(name string) error
}

// PartService: операции над каталогом деталей.
type PartService struct {
	repo   repo.PartRepository
	images ImageStore
	logger *zap.SugaredLogger
}

func NewPartService(r repo.PartRepository, images ImageStore, logger *zap.SugaredLogger) *PartService {
	return &PartService{repo: r, images: images, logger: logger}
}

// PartPage: страница результатов поиска.
type PartPage struct {
	Parts      []model.Part
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// List ищет детали по подстроке q (пустая: без фильтра) и возвращает страницу page размера limit.
// page и limit меньше 1 заменяются значениями по умолчанию.
func (s *PartService) List(ctx context.Context, q string, page, limit int) (PartPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	parts, total, err := s.repo.ListParts(ctx, repo.PartFilter{
		Query:  q,
		Limit:  limit,
		Offset: pageOffset(page, limit),
	})
	if err != nil {
		return PartPage{}, fmt.Errorf("list parts: %w", err)
	}
	if parts == nil {
		parts = []model.Part{}
	}

	return PartPage{
		Parts:      parts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// pageOffset считает (page-1)*limit; при переполнении возвращает math.MaxInt,
// чтобы слишком дальняя страница осталась пустой, а не превратилась в первую.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func totalPages(total int64, limit int) int {
	n := total / int64(limit)
	if total%int64(limit) != 0 {
		n++
	}
	return int(n)
}

func (s *PartService) Get(ctx context.Context, id int64) (*model.Part, error) {
	p, err := s.repo.GetPart(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Create сохраняет изображение (если передано) и вставляет запись. Возвращает id.
func (s *PartService) Create(ctx context.Context, f model.PartFields, image io.Reader) (int64, error) {
	imageName, err := s.saveImage(image)
	if err != nil {
		return 0, err
	}

	p := model.NewPart(f, imageName)
	if err := s.repo.CreatePart(ctx, p); err != nil {
		s.discardImage(imageName)
		return 0, fmt.Errorf("create part: %w", err)
	}
	return p.ID, nil
}

// Update перезаписывает все описательные поля. Ссылка на изображение меняется,
// только если передано новое изображение. Несуществующий id не считается ошибкой.
func (s *PartService) Update(ctx context.Context, id int64, f model.PartFields, image io.Reader) error {
	imageName, err := s.saveImage(image)
	if err != nil {
		return err
	}

	updates := f.Columns()
	if imageName != nil {
		updates["image"] = *imageName
	}
	if err := s.repo.UpdatePart(ctx, id, updates); err != nil {
		s.discardImage(imageName)
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

func (s *PartService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePart(ctx, id); err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}

func (s *PartService) saveImage(image io.Reader) (*string, error) {
	if image == nil {
		return nil, nil
	}
	if s.images == nil {
		return nil, errors.New("image store is not configured")
	}
	name, err := s.images.Save(image)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	return &name, nil
}

// discardImage убирает файл, на который так и не сослалась запись в БД.
func (s *PartService) discardImage(name *string) {
	if name == nil || s.images == nil {
		return
	}
	if err := s.images.Remove(*name); err != nil {
		s.logger.Warnw("failed to remove orphan image", "image", *name, "error", err)
	}
}
