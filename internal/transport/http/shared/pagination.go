package shared

import (
	"net/http"
	"strconv"
)

// ItemsPerPage matches the list screens' fixed page size.
const ItemsPerPage = 20

type Page struct {
	Number int
	Limit  int
	Offset int
}

// ParsePage reads the 1-based "page" query parameter.
func ParsePage(r *http.Request) Page {
	number := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			number = v
		}
	}
	return Page{
		Number: number,
		Limit:  ItemsPerPage,
		Offset: (number - 1) * ItemsPerPage,
	}
}

// PageCount returns the number of pages needed for total items.
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + ItemsPerPage - 1) / ItemsPerPage
}
