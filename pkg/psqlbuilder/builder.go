package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder is a squirrel statement builder preconfigured with Postgres
// dollar placeholders. All repositories build their queries through it.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT query.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT query.
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update starts an UPDATE query.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}
