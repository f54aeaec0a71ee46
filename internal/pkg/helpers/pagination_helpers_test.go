package helpers

import (
	"math"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name          string
		page, size    int
		offset, limit uint64
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 5, 10, 5},
		{"zero page", 0, 10, 0, 10},
		{"zero size", 2, 0, 10, 10},
		{"huge page", math.MaxInt64 / 5, 10, MaxOffset, 10},
		{"max int page", math.MaxInt, 1, MaxOffset, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
			assert.LessOrEqual(t, offset, uint64(math.MaxInt64))
		})
	}
}

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := map[string]int{
		"":                          1,
		"page=4":                    4,
		"page=-2":                   1,
		"page=abc":                  1,
		"page=9999999999999":        MaxOffset,
		"page=99999999999999999999": 1,
	}
	for query, want := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/api/books?"+query, nil)
		assert.Equal(t, want, ParsePage(c), query)
	}
}

func TestNewPaginationMeta(t *testing.T) {
	u, err := url.Parse("/api/books?q=data&page=2")
	require.NoError(t, err)

	meta := NewPaginationMeta(23, 2, 10, u)

	assert.Equal(t, 3, meta.LastPage)
	require.NotNil(t, meta.From)
	require.NotNil(t, meta.To)
	assert.Equal(t, 11, *meta.From)
	assert.Equal(t, 20, *meta.To)
	require.Len(t, meta.Links, 5)
	assert.True(t, meta.Links[2].Active)
	require.NotNil(t, meta.Links[0].URL)
	assert.Contains(t, *meta.Links[0].URL, "q=data")
	assert.Contains(t, *meta.Links[0].URL, "page=1")
}

func TestNewPaginationMetaPastLastPage(t *testing.T) {
	meta := NewPaginationMeta(3, MaxOffset, 10, nil)

	assert.Equal(t, 1, meta.LastPage)
	assert.Nil(t, meta.From)
	assert.Nil(t, meta.To)
	assert.Nil(t, meta.Links[len(meta.Links)-1].URL)
}
