package backend

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query builds the filter, ordering and paging part of a request to the
// backend REST API, e.g. select=*&status=eq.operado&order=created_at.desc.
type Query struct {
	params     url.Values
	order      []string
	countExact bool
}

func NewQuery() *Query {
	return &Query{params: url.Values{}}
}

func (q *Query) Select(columns ...string) *Query {
	q.params.Set("select", strings.Join(columns, ","))
	return q
}

func (q *Query) Eq(column, value string) *Query {
	return q.filter(column, "eq", value)
}

func (q *Query) Neq(column, value string) *Query {
	return q.filter(column, "neq", value)
}

func (q *Query) Gte(column, value string) *Query {
	return q.filter(column, "gte", value)
}

func (q *Query) Lt(column, value string) *Query {
	return q.filter(column, "lt", value)
}

func (q *Query) Lte(column, value string) *Query {
	return q.filter(column, "lte", value)
}

// ILike matches column case-insensitively; '*' in pattern is the wildcard.
func (q *Query) ILike(column, pattern string) *Query {
	return q.filter(column, "ilike", pattern)
}

func (q *Query) In(column string, values []string) *Query {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = strconv.Quote(value)
	}
	return q.filter(column, "in", "("+strings.Join(quoted, ",")+")")
}

// Or joins raw conditions such as "first_name.ilike.*ana*" with a logical or.
func (q *Query) Or(conditions ...string) *Query {
	if len(conditions) == 0 {
		return q
	}
	q.params.Add("or", "("+strings.Join(conditions, ",")+")")
	return q
}

func (q *Query) Order(column string, desc bool) *Query {
	direction := "asc"
	if desc {
		direction = "desc"
	}
	q.order = append(q.order, fmt.Sprintf("%s.%s", column, direction))
	return q
}

func (q *Query) Limit(limit int) *Query {
	if limit > 0 {
		q.params.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (q *Query) Offset(offset int) *Query {
	if offset > 0 {
		q.params.Set("offset", strconv.Itoa(offset))
	}
	return q
}

// CountExact asks the backend to report the total number of matching rows in
// the Content-Range header.
func (q *Query) CountExact() *Query {
	q.countExact = true
	return q
}

func (q *Query) IsCountExact() bool {
	return q != nil && q.countExact
}

func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	values := url.Values{}
	for key, value := range q.params {
		values[key] = append([]string(nil), value...)
	}
	if len(q.order) > 0 {
		values.Set("order", strings.Join(q.order, ","))
	}
	return values.Encode()
}

func (q *Query) filter(column, operator, value string) *Query {
	q.params.Add(column, operator+"."+value)
	return q
}

// SanitizePattern strips characters that carry meaning in the backend's
// filter grammar so user input can be embedded in ILike and Or conditions.
func SanitizePattern(input string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')', '*', '.', ':', '"', '\\':
			return -1
		}
		return r
	}, strings.TrimSpace(input))
}
