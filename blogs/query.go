// Listing-query parsing and SQL assembly. Untrusted query parameters are
// reduced to bounded pagination values, parameterized filters and a
// whitelisted sort before anything reaches the database.
package blogs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// sortColumns whitelists the field names accepted in sortBy and maps them to
// column names. Unknown names are dropped, never interpolated into SQL.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"created_at":   "created_at",
	"updatedAt":    "updated_at",
	"updated_at":   "updated_at",
	"title":        "title",
	"state":        "state",
	"readCount":    "read_count",
	"read_count":   "read_count",
	"readingTime":  "reading_time",
	"reading_time": "reading_time",
}

// ListQuery holds the sanitized parameters of a listing request.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Author string
	State  string
	SortBy string
}

// ParseListQuery builds a ListQuery from raw URL query parameters. Malformed
// pagination values degrade to defaults instead of failing the request.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Page:   defaultPage,
		Limit:  defaultLimit,
		Search: values.Get("search"),
		Author: values.Get("author"),
		State:  values.Get("state"),
		SortBy: values.Get("sortBy"),
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= 1 {
		q.Limit = limit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	return q
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filter assembles the WHERE clause and its arguments. The state filter
// defaults to published so listings never leak drafts; an explicit state
// parameter overrides the default.
func (q ListQuery) filter() (string, []interface{}) {
	var conds []string
	var args []interface{}

	state := string(StatePublished)
	if q.State != "" {
		state = q.State
	}
	args = append(args, state)
	conds = append(conds, fmt.Sprintf("b.state = $%d", len(args)))

	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(b.title ILIKE $%d OR b.description ILIKE $%d OR array_to_string(b.tags, ' ') ILIKE $%d)", n, n, n))
	}

	if q.Author != "" {
		if authorID, err := strconv.ParseInt(q.Author, 10, 64); err == nil {
			args = append(args, authorID)
			conds = append(conds, fmt.Sprintf("b.author = $%d", len(args)))
		}
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// order assembles the ORDER BY clause from the comma-separated sortBy list.
// A leading '-' marks a key descending; listed order sets priority. With no
// usable keys the newest-created-first default applies.
func (q ListQuery) order() string {
	var keys []string
	for _, field := range strings.Split(q.SortBy, ",") {
		field = strings.TrimSpace(field)
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		if col, ok := sortColumns[field]; ok {
			keys = append(keys, "b."+col+" "+direction)
		}
	}
	if len(keys) == 0 {
		return "ORDER BY b.created_at DESC"
	}
	return "ORDER BY " + strings.Join(keys, ", ")
}

// offset returns the number of records skipped before this page.
func (q ListQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

// pages returns the total page count for the given match total.
func (q ListQuery) pages(total int64) int {
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}
