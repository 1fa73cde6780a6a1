package credtrap

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Element is a start tag with its attributes. Attribute names are lowercase.
type Element struct {
	Tag   string
	Attrs map[string]string
}

// Attr returns the value of an attribute and whether it was declared
func (e Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// ElementFinder enumerates elements with a given tag that satisfy a predicate
type ElementFinder interface {
	FindElements(markup, tag string, match func(Element) bool) ([]Element, error)
}

// rawTextTags are the elements whose contents are never parsed as markup
var rawTextTags = map[string]struct{}{
	"script": {},
	"style":  {},
}

// HTMLFinder walks markup with the x/net/html tokenizer
type HTMLFinder struct{}

// NewHTMLFinder creates an ElementFinder backed by golang.org/x/net/html
func NewHTMLFinder() *HTMLFinder {
	return &HTMLFinder{}
}

// FindElements returns every start or self-closing tag named tag for which
// match returns true. Tag names compare case-insensitively; attribute values
// are returned as written. When an attribute is repeated the last one wins.
// Only script and style contents are raw text; markup inside textarea,
// title, noscript and the like is still tokenized.
func (f *HTMLFinder) FindElements(markup, tag string, match func(Element) bool) ([]Element, error) {
	tag = strings.ToLower(tag)
	z := html.NewTokenizer(strings.NewReader(markup))

	var found []Element
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return found, err
			}
			return found, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if _, raw := rawTextTags[tok.Data]; !raw {
				z.NextIsNotRawText()
			}
			if tok.Data != tag {
				continue
			}
			el := Element{Tag: tok.Data, Attrs: make(map[string]string, len(tok.Attr))}
			for _, a := range tok.Attr {
				el.Attrs[a.Key] = a.Val
			}
			if match == nil || match(el) {
				found = append(found, el)
			}
		}
	}
}
