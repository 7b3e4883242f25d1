package render

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"
)

// Palette paints terminal text. Nil functions leave text unstyled, so the
// zero Palette renders plain text.
type Palette struct {
	Strong  func(string) string
	Emph    func(string) string
	Code    func(string) string
	Link    func(string) string
	Strike  func(string) string
	Heading func(string) string
	Quote   func(string) string
	Muted   func(string) string
	Match   func(string) string
}

func paint(f func(string) string, s string) string {
	if f == nil || s == "" {
		return s
	}
	return f(s)
}

type inline uint8

const (
	inStrong inline = 1 << iota
	inEmph
	inCode
	inLink
	inStrike
)

// run is a piece of inline text sharing one style.
type run struct {
	text  string
	style inline
	brk   bool // hard line break
}

func newParser() *parser.Parser {
	return parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
}

// MarkdownHTML converts markdown to an HTML fragment. Raw HTML in the source
// is dropped and only safe link schemes are kept.
func MarkdownHTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	doc := markdown.Parse([]byte(md), newParser())
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink,
	})
	return string(markdown.Render(doc, renderer))
}

// MarkdownTerminal renders markdown as terminal lines no wider than width.
func MarkdownTerminal(md string, width int, p Palette) []string {
	if strings.TrimSpace(md) == "" {
		return nil
	}
	if width < 10 {
		width = 10
	}
	t := &termRenderer{width: width, pal: p}
	doc := markdown.Parse([]byte(md), newParser())
	t.blocks(doc, "", "")
	for len(t.lines) > 0 && t.lines[len(t.lines)-1] == "" {
		t.lines = t.lines[:len(t.lines)-1]
	}
	return t.lines
}

// WrapText word-wraps plain text to width, one entry per line.
func WrapText(s string, width int) []string {
	t := &termRenderer{width: max(width, 10)}
	for _, para := range strings.Split(SanitizeTerminal(s), "\n") {
		t.wrap([]run{{text: para}}, "", "")
	}
	return t.lines
}

type termRenderer struct {
	width int
	pal   Palette
	lines []string
}

func (t *termRenderer) blank() {
	if n := len(t.lines); n > 0 && t.lines[n-1] != "" {
		t.lines = append(t.lines, "")
	}
}

// blocks renders the block children of n. first prefixes the first emitted
// line, rest prefixes the following ones.
func (t *termRenderer) blocks(n ast.Node, first, rest string) {
	for i, c := range n.GetChildren() {
		p := rest
		if i == 0 {
			p = first
		}
		t.block(c, p, rest)
	}
}

func (t *termRenderer) block(n ast.Node, first, rest string) {
	switch n := n.(type) {
	case *ast.Paragraph:
		t.wrap(t.inlines(n, 0), first, rest)
		if !isTightItem(n) {
			t.blank()
		}
	case *ast.Heading:
		line := strings.TrimSpace(flatten(t.inlines(n, inStrong)))
		t.lines = append(t.lines, first+paint(t.pal.Heading, line))
		t.blank()
	case *ast.List:
		t.list(n, first, rest)
		t.blank()
	case *ast.CodeBlock:
		for i, l := range strings.Split(strings.TrimRight(SanitizeTerminal(string(n.Literal)), "\n"), "\n") {
			p := rest
			if i == 0 {
				p = first
			}
			l = runewidth.Truncate(l, max(t.width-runewidth.StringWidth(p)-2, 1), "…")
			t.lines = append(t.lines, p+"  "+paint(t.pal.Code, l))
		}
		t.blank()
	case *ast.BlockQuote:
		bar := paint(t.pal.Quote, "│ ")
		t.blocks(n, first+bar, rest+bar)
	case *ast.HorizontalRule:
		t.lines = append(t.lines, first+paint(t.pal.Muted, strings.Repeat("─", max(t.width-runewidth.StringWidth(first), 1))))
		t.blank()
	case *ast.HTMLBlock:
		t.wrap([]run{{text: SanitizeTerminal(string(n.Literal))}}, first, rest)
		t.blank()
	case *ast.Table:
		t.table(n, first, rest)
		t.blank()
	default:
		if n.AsContainer() != nil {
			t.blocks(n, first, rest)
		}
	}
}

func isTightItem(p *ast.Paragraph) bool {
	item, ok := p.GetParent().(*ast.ListItem)
	if !ok {
		return false
	}
	if list, ok := item.GetParent().(*ast.List); ok && list.Tight {
		return true
	}
	return item.Tight
}

func (t *termRenderer) list(l *ast.List, first, rest string) {
	start := l.Start
	if start == 0 {
		start = 1
	}
	for i, c := range l.GetChildren() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if l.ListFlags&ast.ListTypeOrdered != 0 {
			marker = fmt.Sprintf("%d. ", start+i)
		}
		p := rest
		if i == 0 {
			p = first
		}
		hang := rest + strings.Repeat(" ", runewidth.StringWidth(marker))
		t.blocks(item, p+paint(t.pal.Muted, marker), hang)
	}
}

func (t *termRenderer) table(tbl *ast.Table, first, rest string) {
	i := 0
	ast.WalkFunc(tbl, func(n ast.Node, entering bool) ast.WalkStatus {
		row, ok := n.(*ast.TableRow)
		if !ok || !entering {
			return ast.GoToNext
		}
		var cells []string
		for _, c := range row.GetChildren() {
			cells = append(cells, strings.TrimSpace(flatten(t.inlines(c, 0))))
		}
		p := rest
		if i == 0 {
			p = first
		}
		t.wrap([]run{{text: strings.Join(cells, " │ ")}}, p, rest)
		i++
		return ast.SkipChildren
	})
}

// inlines collects the styled text runs below n.
func (t *termRenderer) inlines(n ast.Node, style inline) []run {
	var out []run
	for _, c := range n.GetChildren() {
		switch c := c.(type) {
		case *ast.Text:
			out = append(out, run{text: SanitizeLine(string(c.Literal)), style: style})
		case *ast.Code:
			out = append(out, run{text: SanitizeLine(string(c.Literal)), style: style | inCode})
		case *ast.Strong:
			out = append(out, t.inlines(c, style|inStrong)...)
		case *ast.Emph:
			out = append(out, t.inlines(c, style|inEmph)...)
		case *ast.Del:
			out = append(out, t.inlines(c, style|inStrike)...)
		case *ast.Link:
			label := t.inlines(c, style|inLink)
			out = append(out, label...)
			if dest := SanitizeLine(string(c.Destination)); dest != "" && dest != strings.TrimSpace(flatten(label)) {
				out = append(out, run{text: " (" + dest + ")", style: style})
			}
		case *ast.Image:
			out = append(out, t.inlines(c, style)...)
		case *ast.Softbreak:
			out = append(out, run{text: " ", style: style})
		case *ast.Hardbreak:
			out = append(out, run{brk: true})
		case *ast.HTMLSpan:
		default:
			if c.AsContainer() != nil {
				out = append(out, t.inlines(c, style)...)
			} else if leaf := c.AsLeaf(); leaf != nil {
				out = append(out, run{text: SanitizeLine(string(leaf.Literal)), style: style})
			}
		}
	}
	return out
}

func flatten(runs []run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.brk {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(r.text)
	}
	return b.String()
}

func (t *termRenderer) style(s inline, text string) string {
	if s&inCode != 0 {
		text = paint(t.pal.Code, text)
	}
	if s&inStrong != 0 {
		text = paint(t.pal.Strong, text)
	}
	if s&inEmph != 0 {
		text = paint(t.pal.Emph, text)
	}
	if s&inStrike != 0 {
		text = paint(t.pal.Strike, text)
	}
	if s&inLink != 0 {
		text = paint(t.pal.Link, text)
	}
	return text
}

type word struct {
	text  string
	style inline
}

// wrap lays runs out in lines, breaking between words where possible.
// Styling is applied after measuring so widths count visible cells only.
func (t *termRenderer) wrap(runs []run, first, rest string) {
	var (
		line      strings.Builder
		lineWidth int
		prefix    = first
		pending   bool // a space is owed before the next word
		started   bool
	)
	avail := func() int {
		return max(t.width-runewidth.StringWidth(prefix), 1)
	}
	flush := func() {
		t.lines = append(t.lines, strings.TrimRight(prefix+line.String(), " "))
		line.Reset()
		lineWidth = 0
		prefix = rest
		pending = false
		started = true
	}
	put := func(w word) {
		ww := runewidth.StringWidth(w.text)
		gap := 0
		if pending && lineWidth > 0 {
			gap = 1
		}
		if lineWidth > 0 && lineWidth+gap+ww > avail() {
			flush()
			gap = 0
		}
		for ww > avail() {
			head := runewidth.Truncate(w.text, avail()-lineWidth, "")
			if head == "" {
				if lineWidth > 0 {
					flush()
					continue
				}
				head = string([]rune(w.text)[:1])
			}
			line.WriteString(t.style(w.style, head))
			w.text = strings.TrimPrefix(w.text, head)
			ww = runewidth.StringWidth(w.text)
			flush()
		}
		if gap == 1 {
			line.WriteByte(' ')
		}
		line.WriteString(t.style(w.style, w.text))
		lineWidth += gap + ww
		pending = false
	}

	for _, r := range runs {
		if r.brk {
			flush()
			continue
		}
		text := r.text
		for text != "" {
			if text[0] == ' ' {
				pending = true
				text = strings.TrimLeft(text, " ")
				continue
			}
			end := strings.IndexByte(text, ' ')
			if end < 0 {
				end = len(text)
			}
			put(word{text: text[:end], style: r.style})
			text = text[end:]
		}
	}
	if lineWidth > 0 || !started {
		flush()
	}
}
