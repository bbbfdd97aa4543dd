package format

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

const defaultWrap = 80

// RenderMarkdown renders note content for a terminal. A fixed style is used rather
// than auto-detection, which can block on terminal queries. NO_COLOR selects the
// plain style.
func RenderMarkdown(md string, width int) (string, error) {
	md = strings.TrimSpace(md)
	if md == "" {
		return "", nil
	}
	if width < 10 {
		width = defaultWrap
	}
	style := styles.DarkStyle
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		style = styles.NoTTYStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
