package formatter

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const minMarkdownWidth = 20

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle is avoided
	// because its terminal background query can block.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// MarkdownStyle picks the glamour style for output written to w. Anything
// that is not a color terminal gets the plain "notty" style. MATLOG_MD_STYLE
// overrides the choice.
func MarkdownStyle(w io.Writer) string {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("MATLOG_MD_STYLE"))); v {
	case styles.DarkStyle, styles.LightStyle, styles.NoTTYStyle, styles.AsciiStyle:
		return v
	}
	if termenv.EnvNoColor() || !isTerminal(w) {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderMarkdown renders a move description for the terminal, wrapped at
// width. Rendering failures fall back to the raw text.
func RenderMarkdown(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}

	r, err := markdownRenderer(style, width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if r := mdRenderers[key]; r != nil {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	mdRenderers[key] = r
	return r, nil
}
