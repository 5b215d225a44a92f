package renderer

import (
	"fmt"
	"html/template"
	"os"
	"regexp"
	"strings"
	"time"
)

var hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Funcs is the helper set the report template is written against. String
// comparisons are case- and whitespace-insensitive so checklist answers like
// "Sim " and "sim" test equal.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"eq": func(a, b any) bool {
			return norm(a) == norm(b)
		},
		"contains": func(arr []string, val any) bool {
			want := norm(val)
			for _, x := range arr {
				if norm(x) == want {
					return true
				}
			}
			return false
		},
		"notEmpty": truthy,
		"coalesce": func(vals ...any) any {
			for _, v := range vals {
				if truthy(v) {
					return v
				}
			}
			return ""
		},
		"yesNo": func(v any) string {
			if b, ok := v.(bool); ok && b {
				return "Sim"
			}
			if norm(v) == "sim" {
				return "Sim"
			}
			return "Não"
		},
		"join": func(arr []string, sep string) string {
			if sep == "" {
				sep = ", "
			}
			return strings.Join(arr, sep)
		},
		"any": func(vals ...any) bool {
			for _, v := range vals {
				if truthy(v) {
					return true
				}
			}
			return false
		},
		"all": func(vals ...any) bool {
			for _, v := range vals {
				if !truthy(v) {
					return false
				}
			}
			return true
		},
		"dateFmt": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"timeFmt": func(s string) string {
			if hhmmRe.MatchString(s) {
				return s
			}
			return ""
		},
	}
}

// loadTemplate reads and parses the report template. A missing file is a
// distinct error so the handler can log exactly what went wrong.
func loadTemplate(path string) (*template.Template, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report template not found at %s: %w", path, err)
	}
	tmpl, err := template.New("report").Funcs(Funcs()).Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template %s: %w", path, err)
	}
	return tmpl, nil
}

func toStr(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case template.URL:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func norm(v any) string {
	return strings.ToLower(strings.TrimSpace(toStr(v)))
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return strings.TrimSpace(x) != ""
	case template.URL:
		return strings.TrimSpace(string(x)) != ""
	case []string:
		return len(x) > 0
	case []template.URL:
		return len(x) > 0
	case time.Time:
		return !x.IsZero()
	default:
		return v != nil
	}
}
