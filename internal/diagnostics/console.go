package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	noteLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	attrStyle  = lipgloss.NewStyle().Faint(true)
)

// Console writes one styled line per diagnostic, for interactive use.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewConsole returns a Reporter writing to w. Colour is enabled only when w is
// a terminal that supports it, so any other writer gets plain text.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, renderer: lipgloss.NewRenderer(w, termenv.WithColorCache(true))}
}

func (c *Console) Note(msg string, args ...any) {
	c.write(noteLabel.Renderer(c.renderer).Render("note:"), msg, args)
}

func (c *Console) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err)
	}
	c.write(errorLabel.Renderer(c.renderer).Render("error:"), msg, args)
}

func (c *Console) write(label, msg string, args []any) {
	line := label + " " + msg
	if attrs := formatArgs(args); attrs != "" {
		line += " " + attrStyle.Renderer(c.renderer).Render(attrs)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

// formatArgs renders slog-style key/value pairs as "k=v k=v".
func formatArgs(args []any) string {
	var parts []string
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			parts = append(parts, fmt.Sprintf("!BADKEY=%v", args[i]))
			break
		}
		parts = append(parts, fmt.Sprintf("%v=%v", args[i], args[i+1]))
	}
	return strings.Join(parts, " ")
}
