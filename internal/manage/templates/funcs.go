package templates

import (
	"encoding/json"
	"html/template"
	"time"
)

// Funcs returns the helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"json":     JSON,
		"date":     Date,
		"navClass": NavClass,
	}
}

// JSON encodes v for embedding in a script block. encoding/json already escapes
// the characters that could close the script element.
func JSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// Date formats a Unix-millisecond timestamp in layout (defaults to 2006-01-02 15:04).
// Zero renders as "-".
func Date(ms int64, layout string) string {
	if ms == 0 {
		return "-"
	}
	if layout == "" {
		layout = "2006-01-02 15:04"
	}
	return time.UnixMilli(ms).In(time.Local).Format(layout)
}

// NavClass returns sidebar link classes.
func NavClass(active bool) string {
	if active {
		return "nav-link nav-link-active"
	}
	return "nav-link"
}
