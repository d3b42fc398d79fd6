package convert

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// FromHTML converts an HTML fragment to markup by way of markdown.
func FromHTML(html string) (string, error) {
	return FromHTMLWithOptions(html, Options{})
}

// FromHTMLWithOptions converts an HTML fragment to markup.
func FromHTMLWithOptions(html string, opts Options) (string, error) {
	markdown, err := ToMarkdown(html)
	if err != nil {
		return "", err
	}
	return FromMarkdownWithOptions([]byte(markdown), opts), nil
}

// ToMarkdown converts HTML to trimmed markdown.
func ToMarkdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
