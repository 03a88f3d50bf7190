package errors

import (
	stdErrors "errors"

	"github.com/jackc/pgconn"
)

// ErrorDump carries the unwrapped error chain plus any Postgres driver detail,
// used by the response writer when logging failed requests.
type ErrorDump struct {
	TopMessage   string
	Code         string
	Chain        []string
	PGCode       string
	PGDetail     string
	PGMessage    string
	PGConstraint string
}

// Dump walks the error chain and extracts loggable detail.
func Dump(err error) ErrorDump {
	dump := ErrorDump{}
	if err == nil {
		return dump
	}

	dump.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		dump.Code = string(typed.Code())
	}

	for current := err; current != nil; current = stdErrors.Unwrap(current) {
		dump.Chain = append(dump.Chain, current.Error())
	}

	var pgErr *pgconn.PgError
	if stdErrors.As(err, &pgErr) {
		dump.PGCode = pgErr.Code
		dump.PGDetail = pgErr.Detail
		dump.PGMessage = pgErr.Message
		dump.PGConstraint = pgErr.ConstraintName
	}

	return dump
}
