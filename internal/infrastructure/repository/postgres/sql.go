package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// invalid_text_representation, raised when a non-uuid id is compared against a uuid column.
const pqInvalidTextRepresentation = "22P02"

func isInvalidID(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqInvalidTextRepresentation
	}
	return false
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}
