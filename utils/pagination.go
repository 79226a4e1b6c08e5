package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page is the envelope paginated list endpoints respond with.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageParams reads `page` and `page_size` from the query string. page_size
// is clamped to maxSize, so callers cannot raise it past the endpoint's cap.
func PageParams(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

// NewPage builds the response envelope, deriving next/previous links from
// the request URL.
func NewPage(c *gin.Context, count int64, page, pageSize int, results interface{}) Page {
	p := Page{Count: count, Results: results}
	if int64(page*pageSize) < count {
		p.Next = pageLink(c, page+1)
	}
	if page > 1 {
		p.Previous = pageLink(c, page-1)
	}
	return p
}

func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
