package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Book is one entry of the catalog response.
type Book struct {
	ID    string          // _id (or id), rendered as a string
	Title string          // empty when the server omits it
	Index int             // position in the server response
	Raw   json.RawMessage // the full server object, passed through unused
}

// dataKey is the response field that holds the book array.
const dataKey = "data"

var errInvalidJSON = errors.New("response is not valid JSON")

// ParseBooks extracts the ordered book list from a catalog response body.
// Elements of the data array that are not JSON objects are skipped; objects
// missing an id or title are kept with empty fields.
func ParseBooks(body []byte) ([]Book, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}
	data := gjson.GetBytes(body, dataKey)
	if !data.Exists() {
		return nil, fmt.Errorf("response has no %q field", dataKey)
	}
	if !data.IsArray() {
		return nil, fmt.Errorf("response field %q is %s, want array", dataKey, data.Type)
	}

	elems := data.Array()
	books := make([]Book, 0, len(elems))
	for i, elem := range elems {
		if !elem.IsObject() {
			continue
		}
		books = append(books, bookFromResult(elem, i))
	}
	return books, nil
}

func bookFromResult(obj gjson.Result, index int) Book {
	id := obj.Get("_id")
	if !id.Exists() || id.Type == gjson.Null {
		id = obj.Get("id")
	}
	return Book{
		ID:    idString(id),
		Title: obj.Get("title").String(),
		Index: index,
		Raw:   json.RawMessage(obj.Raw),
	}
}

// idString renders string and numeric ids the same way regardless of JSON
// type so "7", 7 and 7.0 produce the same row key. Integer literals keep
// their digits so ids beyond float64 precision survive.
func idString(id gjson.Result) string {
	switch id.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return id.String()
	case gjson.Number:
		raw := strings.TrimSpace(id.Raw)
		if isIntegerLiteral(raw) {
			return raw
		}
		return strconv.FormatFloat(id.Num, 'f', -1, 64)
	default:
		return id.Raw
	}
}

func isIntegerLiteral(raw string) bool {
	digits := strings.TrimPrefix(raw, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
