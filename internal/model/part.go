package model

// Part: запись каталога (деталь изделия).
// Все описательные поля необязательные: отсутствующее значение хранится как NULL.
type Part struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	ModelNumber     *string `json:"model_number"`
	ArticleNumber   *string `json:"article_number"`
	ArticleName     *string `json:"article_name"`
	PartName        *string `json:"part_name"`
	PartPseudoName  *string `json:"part_pseudo_name"`
	PartDescription *string `gorm:"type:text" json:"part_description"`
	PartWeight      *string `json:"part_weight"`
	PartSize        *string `json:"part_size"`

	// Image: имя файла в каталоге загрузок.
	Image *string `json:"image"`
}

// PartFields: описательные поля детали без идентификатора и изображения.
type PartFields struct {
	ModelNumber     *string
	ArticleNumber   *string
	ArticleName     *string
	PartName        *string
	PartPseudoName  *string
	PartDescription *string
	PartWeight      *string
	PartSize        *string
}

// NewPart собирает Part из набора полей и ссылки на изображение.
func NewPart(f PartFields, image *string) *Part {
	return &Part{
		ModelNumber:     f.ModelNumber,
		ArticleNumber:   f.ArticleNumber,
		ArticleName:     f.ArticleName,
		PartName:        f.PartName,
		PartPseudoName:  f.PartPseudoName,
		PartDescription: f.PartDescription,
		PartWeight:      f.PartWeight,
		PartSize:        f.PartSize,
		Image:           image,
	}
}

// Columns возвращает значения полей по именам колонок таблицы parts.
func (f PartFields) Columns() map[string]any {
	return map[string]any{
		"model_number":     f.ModelNumber,
		"article_number":   f.ArticleNumber,
		"article_name":     f.ArticleName,
		"part_name":        f.PartName,
		"part_pseudo_name": f.PartPseudoName,
		"part_description": f.PartDescription,
		"part_weight":      f.PartWeight,
		"part_size":        f.PartSize,
	}
}
