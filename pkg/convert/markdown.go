// Package convert turns Markdown and HTML into chat markup.
package convert

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

// mdParser is a goldmark instance with the GFM strikethrough and linkify
// extensions.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
)

// Options controls how documents are mapped to markup.
type Options struct {
	// ColorChar is the trigger written before codes. Defaults to '&'.
	ColorChar rune
	// HeadingColor colors headings. Defaults to gold.
	HeadingColor mcml.Color
	// CodeColor colors code spans and blocks. Defaults to gray.
	CodeColor mcml.Color
	// LinkColor colors link text. Defaults to aqua.
	LinkColor mcml.Color
}

func (o Options) withDefaults() Options {
	if o.ColorChar == 0 {
		o.ColorChar = mcml.DefaultColorChar
	}
	if o.HeadingColor == mcml.ColorUnset {
		o.HeadingColor = mcml.Gold
	}
	if o.CodeColor == mcml.ColorUnset {
		o.CodeColor = mcml.Gray
	}
	if o.LinkColor == mcml.ColorUnset {
		o.LinkColor = mcml.Aqua
	}
	return o
}

// FromMarkdown converts markdown to markup with default options.
func FromMarkdown(markdown []byte) string {
	return FromMarkdownWithOptions(markdown, Options{})
}

// FromMarkdownWithOptions converts markdown to markup.
func FromMarkdownWithOptions(markdown []byte, opts Options) string {
	opts = opts.withDefaults()
	return mcml.Markup(MarkdownRuns(markdown, opts), opts.ColorChar)
}

// MarkdownRuns converts markdown straight to style runs. Blocks are
// separated by newlines; links become open_url groups.
func MarkdownRuns(markdown []byte, opts Options) []mcml.StyleRun {
	if len(markdown) == 0 {
		return nil
	}
	opts = opts.withDefaults()

	doc := mdParser.Parser().Parse(text.NewReader(markdown))
	c := &runConverter{source: markdown, opts: opts}
	c.blocks(doc, "")
	return c.runs
}

// inline is the style and actions applied to text inside a span.
type inline struct {
	style mcml.Style
	click *mcml.ClickAction
	hover *mcml.HoverAction
}

// runConverter holds state during AST conversion.
type runConverter struct {
	source []byte
	opts   Options
	runs   []mcml.StyleRun
	// blocks written so far; a newline goes before every block but the first
	wrote bool
}

// emit appends text, merging with the previous run when nothing differs.
func (c *runConverter) emit(s string, in inline) {
	if s == "" {
		return
	}
	if n := len(c.runs); n > 0 {
		last := &c.runs[n-1]
		if last.Style == in.style && last.Click == in.click && last.Hover == in.hover {
			last.Text += s
			return
		}
	}
	c.runs = append(c.runs, mcml.StyleRun{Text: s, Style: in.style, Click: in.click, Hover: in.hover})
}

// startBlock separates blocks and writes the line prefix.
func (c *runConverter) startBlock(prefix string) {
	if c.wrote {
		c.emit("\n", inline{})
	}
	c.wrote = true
	c.emit(prefix, inline{style: mcml.Style{Color: mcml.DarkGray}})
}

func (c *runConverter) blocks(n ast.Node, prefix string) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.block(child, prefix)
	}
}

func (c *runConverter) block(n ast.Node, prefix string) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		c.startBlock(prefix)
		c.inlines(node, inline{})
	case *ast.Heading:
		c.startBlock(prefix)
		c.inlines(node, inline{style: mcml.Style{Color: c.opts.HeadingColor, Bold: mcml.True}})
	case *ast.List:
		c.list(node, prefix)
	case *ast.FencedCodeBlock:
		c.codeLines(node.Lines(), prefix)
	case *ast.CodeBlock:
		c.codeLines(node.Lines(), prefix)
	case *ast.Blockquote:
		c.blocks(node, prefix+"| ")
	case *ast.ThematicBreak:
		c.startBlock(prefix)
		c.emit("--------", inline{style: mcml.Style{Color: mcml.DarkGray, Strikethrough: mcml.True}})
	case *ast.HTMLBlock:
		// Raw HTML has no chat equivalent
	default:
		c.blocks(node, prefix)
	}
}

func (c *runConverter) list(n *ast.List, prefix string) {
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		indent := prefix + strings.Repeat(" ", len(marker))

		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch ch := child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if first {
					c.startBlock(prefix + marker)
				} else {
					c.startBlock(indent)
				}
				c.inlines(ch, inline{})
			default:
				c.block(child, indent)
			}
			first = false
		}
	}
}

func (c *runConverter) codeLines(lines *text.Segments, prefix string) {
	code := inline{style: mcml.Style{Color: c.opts.CodeColor}}
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		c.startBlock(prefix)
		c.emit(strings.TrimRight(string(line.Value(c.source)), "\r\n"), code)
	}
}

func (c *runConverter) inlines(n ast.Node, in inline) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.inlineNode(child, in)
	}
}

func (c *runConverter) inlineNode(n ast.Node, in inline) {
	switch node := n.(type) {
	case *ast.Text:
		c.emit(string(node.Segment.Value(c.source)), in)
		switch {
		case node.HardLineBreak():
			c.emit("\n", in)
		case node.SoftLineBreak():
			c.emit(" ", in)
		}

	case *ast.String:
		c.emit(string(node.Value), in)

	case *ast.Emphasis:
		if node.Level >= 2 {
			in.style.Bold = mcml.True
		} else {
			in.style.Italic = mcml.True
		}
		c.inlines(node, in)

	case *extast.Strikethrough:
		in.style.Strikethrough = mcml.True
		c.inlines(node, in)

	case *ast.CodeSpan:
		in.style.Color = c.opts.CodeColor
		c.inlines(node, in)

	case *ast.Link:
		c.link(node, string(node.Destination), string(node.Title), in)

	case *ast.AutoLink:
		url := string(node.URL(c.source))
		in.style.Color = c.opts.LinkColor
		in.style.Underlined = mcml.True
		in.click = &mcml.ClickAction{Kind: mcml.OpenURL, Value: url}
		c.emit(url, in)

	case *ast.Image:
		// Images show their alt text
		c.inlines(node, in)

	case *ast.RawHTML:
		// Skip raw HTML

	default:
		c.inlines(n, in)
	}
}

func (c *runConverter) link(n ast.Node, dest, title string, in inline) {
	in.style.Color = c.opts.LinkColor
	in.style.Underlined = mcml.True
	in.click = &mcml.ClickAction{Kind: mcml.OpenURL, Value: dest}

	tip := title
	if tip == "" {
		tip = dest
	}
	in.hover = &mcml.HoverAction{Kind: mcml.ShowText, Runs: []mcml.StyleRun{{Text: tip}}}
	c.inlines(n, in)
}
