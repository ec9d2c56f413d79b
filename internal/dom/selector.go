package dom

import (
	"errors"
	"strings"
)

// The matcher covers the selector subset the default registry uses:
// comma-separated lists of compound selectors, where a compound is an
// optional tag (or *) followed by any number of [attr], [attr=value],
// [attr="value"] and :not(compound) parts. No combinators.

type attrTest struct {
	name     string
	value    string
	hasValue bool
}

type compound struct {
	tag   string // "" means any element, "*" normalized to ""
	attrs []attrTest
	nots  []compound
}

var errBadSelector = errors.New("dom: malformed selector")

// parseSelectorList splits on top-level commas and parses each compound.
func parseSelectorList(s string) ([]compound, error) {
	var out []compound
	depth := 0
	start := 0
	flush := func(end int) error {
		part := strings.TrimSpace(s[start:end])
		if part == "" {
			return errBadSelector
		}
		c, err := parseCompound(part)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				if err := flush(i); err != nil {
					return nil, err
				}
				start = i + 1
			}
		}
	}
	if err := flush(len(s)); err != nil {
		return nil, err
	}
	return out, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	// Leading tag.
	for i < len(s) && (isNameByte(s[i]) || s[i] == '*') {
		i++
	}
	c.tag = s[:i]
	if c.tag == "*" {
		c.tag = ""
	}
	for i < len(s) {
		switch {
		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, errBadSelector
			}
			test, err := parseAttrTest(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, test)
			i += end + 1
		case strings.HasPrefix(s[i:], ":not("):
			inner, adv, err := balanced(s[i+len(":not("):])
			if err != nil {
				return c, err
			}
			sub, err := parseCompound(strings.TrimSpace(inner))
			if err != nil {
				return c, err
			}
			c.nots = append(c.nots, sub)
			i += len(":not(") + adv
		default:
			return c, errBadSelector
		}
	}
	if c.tag == "" && len(c.attrs) == 0 && len(c.nots) == 0 {
		return c, errBadSelector
	}
	return c, nil
}

// balanced scans to the parenthesis closing the already-consumed opener
// and returns the inner text plus bytes consumed including the closer.
func balanced(s string) (inner string, advance int, err error) {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], i + 1, nil
			}
		}
	}
	return "", 0, errBadSelector
}

func parseAttrTest(s string) (attrTest, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return attrTest{}, errBadSelector
	}
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return attrTest{name: s}, nil
	}
	name := strings.TrimSpace(s[:eq])
	val := strings.TrimSpace(s[eq+1:])
	val = strings.Trim(val, `"'`)
	if name == "" {
		return attrTest{}, errBadSelector
	}
	return attrTest{name: name, value: val, hasValue: true}, nil
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '_'
}

// matchAny reports whether the element matches any compound of the list.
// Callers hold doc.mu.
func matchAny(e *Element, sels []compound) bool {
	for _, c := range sels {
		if matchCompound(e, c) {
			return true
		}
	}
	return false
}

func matchCompound(e *Element, c compound) bool {
	if e.tag == "" {
		// Non-element nodes never match.
		return false
	}
	if c.tag != "" && c.tag != e.tag {
		return false
	}
	for _, t := range c.attrs {
		v, ok := e.attrs[t.name]
		if !ok {
			return false
		}
		if t.hasValue && v != t.value {
			return false
		}
	}
	for _, n := range c.nots {
		if matchCompound(e, n) {
			return false
		}
	}
	return true
}
