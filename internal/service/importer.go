package service

import (
	"PartsCatalog/internal/model"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ImportCSV читает CSV с заголовком и вставляет по одной детали на строку.
// Колонки сопоставляются по имени, отсутствующая колонка даёт NULL.
// Транзакции нет: при ошибке уже вставленные строки остаются, возвращается их число.
func (s *PartService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: csv header: %v", ErrInvalidInput, err)
	}
	cols := headerIndex(header)

	inserted := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("%w: csv record %d: %v", ErrInvalidInput, inserted+1, err)
		}

		p := model.NewPart(model.PartFields{
			ModelNumber:     cols.value(record, "model_number"),
			ArticleNumber:   cols.value(record, "article_number"),
			ArticleName:     cols.value(record, "article_name"),
			PartName:        cols.value(record, "part_name"),
			PartPseudoName:  cols.value(record, "part_pseudo_name"),
			PartDescription: cols.value(record, "part_description"),
			PartWeight:      cols.value(record, "part_weight"),
			PartSize:        cols.value(record, "part_size"),
		}, nonEmpty(cols.value(record, "image")))

		if err := s.repo.CreatePart(ctx, p); err != nil {
			s.logger.Errorw("CSV import aborted", "inserted", inserted, "error", err)
			return inserted, fmt.Errorf("insert csv record %d: %w", inserted+1, err)
		}
		inserted++
	}

	s.logger.Infow("CSV import finished", "inserted", inserted)
	return inserted, nil
}

type csvColumns map[string]int

func headerIndex(header []string) csvColumns {
	cols := make(csvColumns, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

// value возвращает значение колонки или nil, если колонки нет в заголовке или в строке.
func (c csvColumns) value(record []string, name string) *string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return nil
	}
	v := record[i]
	return &v
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
