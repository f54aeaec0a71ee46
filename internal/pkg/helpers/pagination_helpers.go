package helpers

import (
	"math"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	UserPageSize    = 5
	DefaultPage     = 1 // Default page is 1-based

	// MaxOffset bounds the computed OFFSET; pages past it are simply empty.
	MaxOffset = math.MaxInt32
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	// (page-1)*size must stay within MaxOffset, checked before multiplying
	if page-1 > MaxOffset/size {
		return MaxOffset, uint64(size)
	}
	return uint64((page - 1) * size), uint64(size)
}

// ParsePage extracts the 1-based page parameter from the request.
func ParsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return DefaultPage
	}
	if page > MaxOffset {
		return MaxOffset
	}
	return page
}

// NewPaginationMeta builds length-aware pagination metadata. requestURL is used to
// render the page links; its other query parameters are preserved.
func NewPaginationMeta(total int64, page, perPage int, requestURL *url.URL) dto.PaginationMeta {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	lastPage := 1
	if total > 0 {
		lastPage = int(math.Ceil(float64(total) / float64(perPage)))
	}

	meta := dto.PaginationMeta{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}

	if total > 0 && page <= lastPage {
		from := (page-1)*perPage + 1
		to := from + perPage - 1
		if int64(to) > total {
			to = int(total)
		}
		meta.From = &from
		meta.To = &to
	}

	meta.Links = buildPageLinks(page, lastPage, requestURL)
	return meta
}

func buildPageLinks(page, lastPage int, requestURL *url.URL) []dto.PageLink {
	pageURL := func(p int) *string {
		if requestURL == nil || p < 1 || p > lastPage {
			return nil
		}
		u := *requestURL
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}

	links := make([]dto.PageLink, 0, lastPage+2)
	links = append(links, dto.PageLink{URL: pageURL(page - 1), Label: "&laquo; Previous"})
	for p := 1; p <= lastPage; p++ {
		links = append(links, dto.PageLink{URL: pageURL(p), Label: strconv.Itoa(p), Active: p == page})
	}
	links = append(links, dto.PageLink{URL: pageURL(page + 1), Label: "Next &raquo;"})
	return links
}
