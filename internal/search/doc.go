// Package search turns recipe search parameters into a parameterized
// WHERE clause and runs it against the recipes table.
//
// A request goes through three steps:
//
//	filter := search.ParseFilter(params)           // normalize raw parameters
//	query := search.Compile(filter, search.Postgres) // typed predicates -> SQL + args
//	recipes, err := executor.Search(ctx, filter, search.Descending)
//
// Predicates are emitted in a fixed order (query, tags, skill level, cook
// time bounds, prep time bounds) and combined with AND. Placeholders are
// numbered from 1 in emission order; the number of arguments always equals
// the number of distinct placeholders.
package search
