package repo

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// searchColumns: поля, по которым ищет строка поиска каталога.
var searchColumns = []string{
	"model_number",
	"article_number",
	"article_name",
	"part_name",
	"part_pseudo_name",
	"part_description",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicate строит условие WHERE: подстрока без учёта регистра хотя бы в одном из searchColumns.
// Плейсхолдеры в формате "?", их подставляет gorm под конкретный диалект.
func searchPredicate(q string) (string, []any, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	or := make(squirrel.Or, 0, len(searchColumns))
	for _, col := range searchColumns {
		or = append(or, squirrel.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", pattern))
	}
	return or.ToSql()
}
