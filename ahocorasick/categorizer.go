// Package ahocorasick categorizes posts with a single-pass Aho-Corasick
// keyword automaton built from a wptransfer.CategoryTable.
package ahocorasick

import (
	"regexp"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/fwojciec/wptransfer"
)

// Ensure Categorizer implements wptransfer.Categorizer at compile time.
var _ wptransfer.Categorizer = (*Categorizer)(nil)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Categorizer assigns the first category in table order whose keywords
// occur in a post's title or content.
type Categorizer struct {
	mu      sync.Mutex // Matcher.Match mutates internal state
	matcher *ahocorasick.Matcher

	rules    []wptransfer.Category
	keywords []string
	kwRules  [][]int // keyword index -> rule indexes
	fallback wptransfer.Category
}

// NewCategorizer builds the automaton for table. Keywords are matched
// case-insensitively; empty keywords are ignored.
func NewCategorizer(table wptransfer.CategoryTable) *Categorizer {
	c := &Categorizer{fallback: table.Default}

	index := make(map[string]int)
	for i, rule := range table.Rules {
		c.rules = append(c.rules, rule.Category)
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			k, ok := index[kw]
			if !ok {
				k = len(c.keywords)
				index[kw] = k
				c.keywords = append(c.keywords, kw)
				c.kwRules = append(c.kwRules, nil)
			}
			c.kwRules[k] = append(c.kwRules[k], i)
		}
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}
	return c
}

// Categorize returns the category of the earliest rule with a keyword hit,
// or the table default when nothing matches.
func (c *Categorizer) Categorize(title, content string) wptransfer.Category {
	if c.matcher == nil {
		return c.fallback
	}

	text := normalizeText(title + " " + content)

	c.mu.Lock()
	hits := c.matcher.Match([]byte(text))
	c.mu.Unlock()

	best := -1
	for _, k := range hits {
		if k >= len(c.kwRules) {
			continue
		}
		for _, r := range c.kwRules[k] {
			if best == -1 || r < best {
				best = r
			}
		}
	}
	if best == -1 {
		return c.fallback
	}
	return c.rules[best]
}

// normalizeText lower-cases text and replaces markup with spaces.
func normalizeText(s string) string {
	return strings.ToLower(tagRe.ReplaceAllString(s, " "))
}
