package sqlite

import "github.com/Masterminds/squirrel"

// Shared across repository implementations.
var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
