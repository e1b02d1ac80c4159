// Package page names the elements of the shop the suite reads from and acts
// on, and maps each name to a selector. Flows address elements by name only;
// browser backends resolve names through a Selectors table.
package page

import (
	"fmt"
	"regexp"
	"strings"
)

// Element is the stable name of a page element
type Element string

// Target is an element, optionally narrowed by a text argument such as a
// product name
type Target struct {
	Element Element
	Arg     string
}

// Of returns a target for e narrowed to arg
func Of(e Element, arg string) Target {
	return Target{Element: e, Arg: arg}
}

// T returns an un-narrowed target for e
func T(e Element) Target {
	return Target{Element: e}
}

// String renders the target for error messages
func (t Target) String() string {
	if t.Arg == "" {
		return string(t.Element)
	}
	return fmt.Sprintf("%s(%q)", t.Element, t.Arg)
}

// State is the condition a wait blocks on
type State string

// Element states
const (
	Visible  State = "visible"
	Hidden   State = "hidden"
	Attached State = "attached"
)

// Selector locates an element. When Scope is set the element is searched
// inside the first Scope match whose text contains the filter text; otherwise
// the filter applies to the CSS matches themselves. The filter text is the
// target's Arg, or HasText when the target carries none.
type Selector struct {
	Scope   string
	CSS     string
	HasText string
}

// Filter returns the text used to narrow matches for target t
func (s Selector) Filter(t Target) string {
	if t.Arg != "" {
		return t.Arg
	}
	return s.HasText
}

// Selectors maps element names to selectors
type Selectors map[Element]Selector

// Resolve returns the selector for t
func (s Selectors) Resolve(t Target) (Selector, error) {
	sel, ok := s[t.Element]
	if !ok {
		return Selector{}, fmt.Errorf("no selector for element %s", t.Element)
	}
	return sel, nil
}

// MatchURL reports whether url matches a glob pattern where "**" matches any
// run of characters and "*" matches any run without a slash
func MatchURL(pattern, url string) bool {
	return globToRegexp(pattern).MatchString(url)
}

func globToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
