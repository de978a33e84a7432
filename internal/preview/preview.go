// Package preview renders compact terminal swatches for stylesheet values.
package preview

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/resolve"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

// Options controls terminal capabilities.
type Options struct {
	// Color enables ANSI colors through lipgloss.
	Color bool
	// Unicode enables block and shape glyphs; otherwise ASCII fallbacks are used.
	Unicode bool
	// Output is where swatches are written, defaulting to stdout. Its color
	// profile is detected; when Color is set on an output without one,
	// 256 colors are assumed.
	Output io.Writer
}

// Renderer draws swatches. Variable references are previewed one hop deep.
type Renderer struct {
	opts     Options
	resolver *resolve.Resolver
	lip      *lipgloss.Renderer
}

// New returns a Renderer resolving variables against defines.
func New(defines map[string]value.Value, opts Options) *Renderer {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	lip := lipgloss.NewRenderer(out)
	if opts.Color && lip.ColorProfile() == termenv.Ascii {
		lip.SetColorProfile(termenv.ANSI256)
	}

	return &Renderer{
		opts:     opts,
		resolver: resolve.New(defines, resolve.WithMaxDepth(1)),
		lip:      lip,
	}
}

// Swatch returns a short visual for v.
func (r *Renderer) Swatch(v value.Value) string {
	if v == nil {
		return ""
	}
	return value.Visit[string](v, swatcher{r: r})
}

// Line renders the swatch followed by the canonical value text.
func (r *Renderer) Line(v value.Value) string {
	if v == nil {
		return ""
	}
	return r.Swatch(v) + " " + value.Encode(v)
}

type glyphs struct {
	color, transparent, link, unresolved, size, font, inherit, shadow string
	shapes                                                            [4]string
}

var (
	unicodeGlyphs = glyphs{
		color: "██", transparent: "░░", link: "🔗", unresolved: "?",
		size: "↔", font: "Aa", inherit: "↰", shadow: "▒▒",
		shapes: [4]string{"▭", "●", "▢", "⬡"},
	}
	asciiGlyphs = glyphs{
		color: "##", transparent: "..", link: "->", unresolved: "?",
		size: "<>", font: "Aa", inherit: "^", shadow: "%%",
		shapes: [4]string{"[]", "()", "(]", "<>"},
	}
)

func (r *Renderer) glyphs() glyphs {
	if r.opts.Unicode {
		return unicodeGlyphs
	}
	return asciiGlyphs
}

func (r *Renderer) paint(text string, c value.SolidColor) string {
	if !r.opts.Color {
		return text
	}
	return r.lip.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(text)
}

// colorOf resolves a composite color slot one hop deep.
func (r *Renderer) colorOf(v value.Value) (value.SolidColor, bool) {
	res := r.resolver.Resolve(v)
	if res.IsUnresolved() {
		return value.SolidColor{}, false
	}
	c, ok := res.Value.(value.SolidColor)
	return c, ok
}

type swatcher struct {
	r *Renderer
}

func (s swatcher) SolidColor(c value.SolidColor) string {
	g := s.r.glyphs()
	if c.A == 0 {
		return g.transparent
	}
	if !s.r.opts.Color {
		return g.color + " " + c.Hex()
	}
	return s.r.paint(g.color, c)
}

func (s swatcher) Shape(v value.Shape) string {
	if int(v.Form) < 0 || int(v.Form) >= len(s.r.glyphs().shapes) {
		return ""
	}
	return s.r.glyphs().shapes[v.Form]
}

func (s swatcher) DpSize(value.DpSize) string                 { return s.r.glyphs().size }
func (s swatcher) SpSize(value.SpSize) string                 { return s.r.glyphs().size }
func (s swatcher) PercentageSize(value.PercentageSize) string { return s.r.glyphs().size }
func (s swatcher) FontFamily(value.FontFamily) string         { return s.r.glyphs().font }
func (s swatcher) FontWeight(value.FontWeight) string         { return s.r.glyphs().font }

func (s swatcher) FontStyle(v value.FontStyle) string {
	if v.Italic && s.r.opts.Color {
		return s.r.lip.NewStyle().Italic(true).Render(s.r.glyphs().font)
	}
	return s.r.glyphs().font
}

func (s swatcher) Inherit(value.Inherit) string { return s.r.glyphs().inherit }

func (s swatcher) DefinedVar(v value.DefinedVar) string {
	g := s.r.glyphs()
	res := s.r.resolver.Resolve(v)
	if res.IsUnresolved() {
		return g.link + g.unresolved
	}
	return g.link + s.r.Swatch(res.Value)
}

func (s swatcher) Border(v value.Border) string {
	shape := s.r.glyphs().shapes[value.ShapeRoundedCorner]
	if c, ok := s.r.colorOf(v.Color); ok {
		return s.r.paint(shape, c)
	}
	return shape + s.r.glyphs().unresolved
}

func (s swatcher) Shadow(v value.Shadow) string {
	g := s.r.glyphs()
	if c, ok := s.r.colorOf(v.Color); ok {
		return s.r.paint(g.shadow, c)
	}
	return g.shadow + g.unresolved
}
