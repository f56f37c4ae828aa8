// Package pagination builds the navigational metadata returned alongside
// listing responses. It works purely on the request URL string: the offset
// token is located and replaced textually so caller-supplied parameters keep
// their original order and encoding.
package pagination

import (
	"strconv"
	"strings"
)

type Links struct {
	Self     string `json:"self"`
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

type Metadata struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	PageCount  int   `json:"page_count"`
	TotalCount int64 `json:"total_count"`
	Links      Links `json:"links"`
}

// Build computes page descriptors and self/first/previous/next/last links
// from the original request URL and the resolved window. The self link always
// carries explicit offset and limit parameters, appended when the caller
// omitted them. next and previous degrade to self at the bounds instead of
// pointing past them.
func Build(originalURL string, offset, limit int, totalCount int64, recordCount int) Metadata {
	if !strings.Contains(originalURL, "offset=") {
		if !strings.Contains(originalURL, "?") {
			originalURL += "?offset=" + strconv.Itoa(offset)
		} else {
			originalURL += "&offset=" + strconv.Itoa(offset)
		}
	}
	if !strings.Contains(originalURL, "limit=") {
		originalURL += "&limit=" + strconv.Itoa(limit)
	}

	offsetToken := "offset=" + strconv.Itoa(offset)
	replaceOffset := func(newOffset int) string {
		return strings.Replace(originalURL, offsetToken, "offset="+strconv.Itoa(newOffset), 1)
	}

	links := Links{
		Self:     originalURL,
		First:    replaceOffset(0),
		Previous: originalURL,
		Next:     originalURL,
		Last:     originalURL,
	}

	page := 0
	if limit > 0 {
		page = offset / limit
		links.Last = replaceOffset(int(totalCount/int64(limit)) * limit)
		if int64(offset+limit) < totalCount {
			links.Next = replaceOffset(offset + limit)
		}
		if offset-limit >= 0 {
			links.Previous = replaceOffset(offset - limit)
		}
	}

	return Metadata{
		Page:       page,
		PerPage:    limit,
		PageCount:  recordCount,
		TotalCount: totalCount,
		Links:      links,
	}
}
