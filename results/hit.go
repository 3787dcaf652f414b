package results

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Hit is one element of the search response's value array. The index schema
// varies between documents, so no key is guaranteed to be present.
type Hit map[string]any

// String returns the value of key as a string. Missing and null values are
// returned as the empty string.
func (h Hit) String(key string) string {
	return stringify(h[key])
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func asHit(v any) (h Hit, ok bool) {
	switch v := v.(type) {
	case Hit:
		return v, true
	case map[string]any:
		return Hit(v), true
	}
	return nil, false
}

// truncate returns the first n characters of s, and whether anything was cut.
func truncate(s string, n int) (string, bool) {
	r := []rune(s)
	if len(r) <= n {
		return s, false
	}
	return string(r[:n]), true
}

// PlainText strips highlight markup (e.g. <em>) from a search snippet.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
