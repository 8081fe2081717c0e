package registry

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// baseFuncs returns the render-state-independent template functions.
func baseFuncs(baseURL string) template.FuncMap {
	return template.FuncMap{
		// Content
		"markdown": markdownFunc,

		// Text shaping
		"title": titleFunc,
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"trim":  strings.TrimSpace,

		// Links
		"absURL": func(p string) string { return absURL(baseURL, p) },
	}
}

// markdownFunc converts a markdown string (typically a params value) to HTML.
func markdownFunc(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func titleFunc(s string) string {
	return cases.Title(language.English).String(s)
}

// absURL resolves a site-relative path against the configured base URL.
// Absolute URLs pass through untouched.
func absURL(base, p string) string {
	if strings.Contains(p, "://") || base == "" {
		return p
	}
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}
