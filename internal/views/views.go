// Package views holds the embedded page templates and their helpers.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates
var templatesFS embed.FS

// New returns the fiber view engine over the embedded templates.
func New() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":   Money,
		"date":    Date,
		"stamp":   Stamp,
		"dict":    Dict,
		"title":   Title,
		"initial": Initial,
		"scale":   func(f float64) string { return fmt.Sprintf("%g", f) },
		"add":     func(a, b int) int { return a + b },
		"join":    strings.Join,
	}
}

// Money renders a peso amount with thousands separators.
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "₱" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Date accepts time.Time or *time.Time; zero and nil render as "-".
func Date(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	case *time.Time:
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	}
	return "-"
}

func Stamp(t time.Time) string { return t.Local().Format("Jan 2, 2006 3:04 PM") }

// Dict builds a map from alternating keys and values for sub-templates.
func Dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func Initial(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}
