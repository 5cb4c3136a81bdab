package backend

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Encode(t *testing.T) {
	q := NewQuery().
		Select("id", "status").
		Eq("status", "operado").
		Gte("scheduled_at", "2024-01-01T00:00:00Z").
		Lt("scheduled_at", "2024-01-02T00:00:00Z").
		In("id", []string{"a", "b"}).
		Order("created_at", true).
		Order("id", false).
		Limit(20).
		Offset(40)

	values, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)

	assert.Equal(t, "id,status", values.Get("select"))
	assert.Equal(t, "eq.operado", values.Get("status"))
	assert.Equal(t, []string{"gte.2024-01-01T00:00:00Z", "lt.2024-01-02T00:00:00Z"}, values["scheduled_at"])
	assert.Equal(t, `in.("a","b")`, values.Get("id"))
	assert.Equal(t, "created_at.desc,id.asc", values.Get("order"))
	assert.Equal(t, "20", values.Get("limit"))
	assert.Equal(t, "40", values.Get("offset"))
}

func TestQuery_ZeroLimitAndOffsetAreOmitted(t *testing.T) {
	values, err := url.ParseQuery(NewQuery().Limit(0).Offset(0).Encode())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestQuery_Or(t *testing.T) {
	q := NewQuery().Or("first_name.ilike.*ana*", "last_name.ilike.*ana*")
	values, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)
	assert.Equal(t, "(first_name.ilike.*ana*,last_name.ilike.*ana*)", values.Get("or"))

	empty := NewQuery().Or()
	assert.Equal(t, "", empty.Encode())
}

func TestQuery_EncodeIsRepeatable(t *testing.T) {
	q := NewQuery().Order("created_at", true)
	assert.Equal(t, q.Encode(), q.Encode())
}

func TestSanitizePattern(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "  Pérez ", expected: "Pérez"},
		{input: "a,b(c)*", expected: "abc"},
		{input: `12.345.678-9`, expected: "123456789"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizePattern(tt.input))
		})
	}
}
