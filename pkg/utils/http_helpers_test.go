package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQueryPagination(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "10")
	values.Set("page", "3")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 20, filter.Offset)
}

func TestParseFilterFromQueryLimitCap(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "100000")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQueryIgnoresGarbage(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "abc")
	values.Set("page", "-5")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
}

func TestParseFilterFromQuerySearchAndFields(t *testing.T) {
	values := url.Values{}
	values.Set("search", "дюна")
	values.Set("filter[category]", "books")
	values.Set("filter[year]", "1965")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "дюна", filter.Search)
	assert.Equal(t, "books", filter.Filter["category"])
	assert.Equal(t, "1965", filter.Filter["year"])
}
