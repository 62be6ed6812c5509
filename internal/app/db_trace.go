package app

import (
	"regexp"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/forces-league/internal/config"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// dbTraceOptions configures the span attributes attached to every postgres statement.
func dbTraceOptions(cfg config.Config) []otelsql.Option {
	return []otelsql.Option{
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("service.name", cfg.ServiceName),
		),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
}

func formatDBQueryForTrace(query string) string {
	normalized := strings.TrimSpace(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) > maxTracedQueryLength {
		normalized = normalized[:maxTracedQueryLength] + "..."
	}
	return normalized
}
