package utils

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateParse parses a template with the sprig FuncMap and additional functions.
func TemplateParse(name, tmplStr string) (*template.Template, error) {
	funcs := template.FuncMap{
		"truncate": truncate,
		"numbered": Numbered,
	}
	return template.New(name).Funcs(sprig.FuncMap()).Funcs(funcs).Parse(tmplStr)
}

func truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Numbered renders items one per line as "<label> 1: a", "<label> 2: b", ...
func Numbered(label string, items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = label + " " + strconv.Itoa(i+1) + ": " + item
	}
	return strings.Join(lines, "\n")
}
