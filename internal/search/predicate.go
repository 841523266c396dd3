package search

import (
	"fmt"
	"strings"
)

// Predicate is one boolean condition over the recipes relation. It owns its
// bound values; the compiler hands it one placeholder per value.
type Predicate interface {
	// Args returns the bound values in placeholder order.
	Args() []any
	// Render writes the condition. len(slots) == len(Args()).
	Render(slots []string) string
}

// contains matches when any of the columns contains value as a
// case-insensitive substring. With shared set, every column references the
// same placeholder, so the predicate binds a single value.
type contains struct {
	columns []string
	value   string
	shared  bool
}

func (p contains) Args() []any {
	n := len(p.columns)
	if p.shared {
		n = 1
	}
	args := make([]any, n)
	for i := range args {
		args[i] = likePattern(p.value)
	}
	return args
}

func (p contains) Render(slots []string) string {
	parts := make([]string, len(p.columns))
	for i, col := range p.columns {
		slot := slots[0]
		if !p.shared {
			slot = slots[i]
		}
		parts[i] = fmt.Sprintf(`LOWER(%s) LIKE LOWER(%s) ESCAPE '\'`, col, slot)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// compare is a binary comparison between a column and one bound value.
type compare struct {
	column string
	op     string
	value  any
}

func (p compare) Args() []any {
	return []any{p.value}
}

func (p compare) Render(slots []string) string {
	return fmt.Sprintf("%s %s %s", p.column, p.op, slots[0])
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s in wildcards. LIKE metacharacters inside s are escaped
// so they match literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Predicates returns the predicates for f in emission order.
func Predicates(f Filter) []Predicate {
	var preds []Predicate

	if f.Query != "" {
		preds = append(preds, contains{
			columns: []string{"title", "description"},
			value:   f.Query,
		})
	}

	for _, tag := range f.Tags {
		preds = append(preds, contains{
			columns: []string{"description", "skill_level", "source_platform"},
			value:   tag,
			shared:  true,
		})
	}

	if f.SkillLevel != "" {
		preds = append(preds, compare{column: "skill_level", op: "=", value: f.SkillLevel})
	}

	bounds := []struct {
		column string
		op     string
		v      *int
	}{
		{"cook_time", ">=", f.MinCookTime},
		{"cook_time", "<=", f.MaxCookTime},
		{"prep_time", ">=", f.MinPrepTime},
		{"prep_time", "<=", f.MaxPrepTime},
	}
	for _, b := range bounds {
		if b.v != nil {
			preds = append(preds, compare{column: b.column, op: b.op, value: *b.v})
		}
	}

	return preds
}
