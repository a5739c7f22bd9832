package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownStyle(t *testing.T) {
	t.Setenv("MATLOG_MD_STYLE", "")
	assert.Equal(t, "notty", MarkdownStyle(&bytes.Buffer{}))

	t.Setenv("MATLOG_MD_STYLE", "light")
	assert.Equal(t, "light", MarkdownStyle(&bytes.Buffer{}))

	t.Setenv("MATLOG_MD_STYLE", "bogus")
	assert.Equal(t, "notty", MarkdownStyle(&bytes.Buffer{}))
}

func TestRenderMarkdown_PlainStyle(t *testing.T) {
	out := RenderMarkdown("Control the **far-side** underhook.\n\n- step the knee through\n- crossface", "notty", 60)

	assert.Contains(t, out, "far-side")
	assert.Contains(t, out, "step the knee through")
	assert.Contains(t, out, "crossface")
}

func TestRenderMarkdown_Blank(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown("  \n ", "notty", 60))
}

func TestRenderMarkdown_UnknownStyleFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "raw *text*", RenderMarkdown("raw *text*", "no-such-style", 60))
}

func TestFormatMoveDetail(t *testing.T) {
	m := move("bbbbbbbb-2", "Knee Slice", "aaaaaaaa-1", 3)
	desc := "Pin the **hip** first."
	m.Description = &desc

	out := stripANSI(FormatMoveDetail(m, MoveDetailOptions{MarkdownStyle: "notty", Width: 60}))

	assert.Contains(t, out, "KNEE SLICE")
	assert.Contains(t, out, "aaaaaaaa-1")
	assert.Contains(t, out, "Order")
	assert.Contains(t, out, "hip")
}

func TestFormatMoveDetail_Root(t *testing.T) {
	out := stripANSI(FormatMoveDetail(move("aaaaaaaa-1", "Guard Passing", "", 0), MoveDetailOptions{}))
	assert.Contains(t, out, "root")
	assert.NotContains(t, out, "Pin")
}
