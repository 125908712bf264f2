package ui

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
)

// IDLength is the fixed length of every record identifier.
const IDLength = 50

// GetID returns the "id" query parameter when it is exactly IDLength characters (runes) long.
// Anything else, including absence, is reported as apierror.NotFound("id").
func GetID(r *http.Request) (string, error) {
	return queryID(r, "id")
}

func queryID(r *http.Request, name string) (string, error) {
	id := r.URL.Query().Get(name)
	if utf8.RuneCountInString(id) != IDLength {
		return "", apierror.NotFound(name)
	}
	return id, nil
}

// PageIndex returns the "page" query parameter, defaulting to 1 and clamped to at least 1.
func PageIndex(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
