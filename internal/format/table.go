package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const maxCellWidth = 48

// columnOrder puts identifying fields first; unknown fields follow alphabetically.
var columnOrder = []string{
	"id", "name", "title", "content", "status", "state", "priority", "active", "source",
	"areaId", "projectId", "dueAt", "scheduledAt", "completedAt",
	"ts", "type", "entityKind", "entityId", "payload",
	"createdAt", "updatedAt",
}

// WriteTable renders v as a bordered table. A {"data": ...} envelope is unwrapped;
// a list becomes one row per element and a single object becomes field/value rows.
func WriteTable(w io.Writer, v any, opts ...termenv.OutputOption) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	if m, ok := x.(map[string]any); ok && len(m) == 1 {
		if d, ok := m["data"]; ok {
			x = d
		}
	}

	r := newRenderer(w, opts...)
	var t *table.Table
	switch d := x.(type) {
	case []any:
		if len(d) == 0 {
			_, err := fmt.Fprintln(w, r.NewStyle().Faint(true).Render("(no results)"))
			return err
		}
		t = listTable(r, d)
	case map[string]any:
		t = recordTable(r, d)
	default:
		_, err := fmt.Fprintln(w, cell(d))
		return err
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

// newRenderer honors NO_COLOR and otherwise follows the writer's terminal capabilities.
func newRenderer(w io.Writer, opts ...termenv.OutputOption) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w, opts...)
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func baseTable(r *lipgloss.Renderer) *table.Table {
	header := r.NewStyle().Bold(true).Padding(0, 1)
	body := r.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return body
		})
}

func listTable(r *lipgloss.Renderer, items []any) *table.Table {
	seen := map[string]bool{}
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			for k := range m {
				seen[k] = true
			}
		}
	}
	cols := orderedKeys(seen)
	if len(cols) == 0 {
		cols = []string{"value"}
	}

	t := baseTable(r).Headers(cols...)
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			t.Row(cell(it))
			continue
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(m[c])
		}
		t.Row(row...)
	}
	return t
}

func recordTable(r *lipgloss.Renderer, m map[string]any) *table.Table {
	seen := make(map[string]bool, len(m))
	for k := range m {
		seen[k] = true
	}
	t := baseTable(r).Headers("field", "value")
	for _, k := range orderedKeys(seen) {
		t.Row(k, cell(m[k]))
	}
	return t
}

func orderedKeys(seen map[string]bool) []string {
	out := make([]string, 0, len(seen))
	for _, k := range columnOrder {
		if seen[k] {
			out = append(out, k)
		}
	}
	var rest []string
	for k := range seen {
		if !containsString(columnOrder, k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func cell(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case float64:
		if float64(int64(t)) == t {
			s = strconv.FormatInt(int64(t), 10)
		} else {
			s = strconv.FormatFloat(t, 'f', -1, 64)
		}
	default:
		b, err := json.Marshal(t)
		if err != nil {
			s = fmt.Sprintf("%v", t)
		} else {
			s = string(b)
		}
	}
	s = strings.Join(strings.Fields(s), " ")
	if xansi.StringWidth(s) > maxCellWidth {
		s = xansi.Truncate(s, maxCellWidth, "…")
	}
	return s
}
