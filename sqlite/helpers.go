package sqlite

import (
	"strings"
	"time"

	"github.com/fwojciec/blogmirror"
)

// unixSeconds converts t to epoch seconds. The zero time is stored as 0.
func unixSeconds(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// fromUnixSeconds is the inverse of unixSeconds; 0 reads back as the zero time.
func fromUnixSeconds(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

func storageError(err error, format string, args ...any) error {
	return blogmirror.WrapError(blogmirror.ESTORAGE, err, format, args...)
}
