// Package search builds the teammate-search query. Every filter value
// becomes a bind parameter; the builder never interpolates user input
// into SQL text.
package search

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter is the structured teammate-search request. Each populated
// category contributes one predicate group; groups are combined by AND,
// values within a group by OR. An empty Filter matches every user.
type Filter struct {
	Query       string
	Skills      []string
	Years       []string
	Departments []string
}

// queryColumns are searched by the free-text query, any one match
// satisfies the group.
var queryColumns = []string{"full_name", "skills", "department", "institution"}

// Conditions translates the filter into clause expressions. Query, skill
// and department matching is case-insensitive substring containment;
// years are exact category membership. The asymmetry is deliberate.
func (f Filter) Conditions() []clause.Expression {
	var conds []clause.Expression

	if query := strings.TrimSpace(f.Query); query != "" {
		group := make([]clause.Expression, 0, len(queryColumns))
		for _, column := range queryColumns {
			group = append(group, contains(column, query))
		}
		conds = append(conds, anyOf(group))
	}

	if len(f.Skills) > 0 {
		group := make([]clause.Expression, 0, len(f.Skills))
		for _, skill := range f.Skills {
			group = append(group, contains("skills", skill))
		}
		conds = append(conds, anyOf(group))
	}

	if len(f.Years) > 0 {
		values := make([]interface{}, 0, len(f.Years))
		for _, year := range f.Years {
			values = append(values, year)
		}
		conds = append(conds, clause.IN{
			Column: clause.Column{Name: "year"},
			Values: values,
		})
	}

	if len(f.Departments) > 0 {
		group := make([]clause.Expression, 0, len(f.Departments))
		for _, department := range f.Departments {
			group = append(group, contains("department", department))
		}
		conds = append(conds, anyOf(group))
	}

	return conds
}

// anyOf folds a group into one expression. A single-value group must not
// become an OrConditions: gorm's AND builder joins a one-element
// OrConditions to its neighbors with OR, which would leak the value out
// of its category.
func anyOf(group []clause.Expression) clause.Expression {
	if len(group) == 1 {
		return group[0]
	}
	return clause.Or(group...)
}

// Apply attaches the composed predicate to a query. With no filters the
// query is returned untouched and matches all rows.
func (f Filter) Apply(tx *gorm.DB) *gorm.DB {
	conds := f.Conditions()

	if len(conds) == 0 {
		return tx
	}

	return tx.Where(clause.And(conds...))
}

// contains builds a case-insensitive substring predicate. LOWER on both
// sides keeps behavior identical across postgres and sqlite.
func contains(column, value string) clause.Expression {
	return clause.Expr{
		SQL:  "LOWER(" + column + ") LIKE ?",
		Vars: []interface{}{"%" + strings.ToLower(value) + "%"},
	}
}
