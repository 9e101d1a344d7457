// file: internals/features/finance/payments/service/pg_errors.go
package service

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// IsUniqueViolation: deteksi pelanggaran unique constraint (Postgres 23505).
// Fallback string-match buat driver yang tidak expose *pq.Error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
