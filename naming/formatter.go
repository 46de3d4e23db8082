// SPDX-License-Identifier: EPL-2.0

package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Taken reports whether a file name is already claimed by another file in
// the same directory.
type Taken func(name string) bool

// Formatter turns a base file name, extension included, into a new one.
type Formatter interface {
	Format(name string, taken Taken) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(name string, taken Taken) string

func (f FormatterFunc) Format(name string, taken Taken) string { return f(name, taken) }

// DefaultFormatters is the chain used when none is configured.
func DefaultFormatters() []Formatter {
	return []Formatter{TitleCase{}}
}

// Chain runs name through formatters in order.
func Chain(name string, taken Taken, formatters ...Formatter) string {
	for _, f := range formatters {
		name = f.Format(name, taken)
	}
	return name
}

// splitName splits "Kick.WAV " into "Kick" and ".wav".
func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	return stem, strings.ToLower(strings.TrimSpace(ext))
}

var nonAlnum = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// TitleCase replaces every run of characters other than ASCII letters and
// digits in the stem with a single space, trims it and title-cases each
// word. The extension is lowercased. A stem with no letters or digits is
// left alone.
type TitleCase struct{}

func (TitleCase) Format(name string, _ Taken) string {
	stem, ext := splitName(name)

	clean := strings.TrimSpace(nonAlnum.ReplaceAllString(stem, " "))
	if clean == "" {
		return name
	}

	return cases.Title(language.Und).String(clean) + ext
}

// Rule rewrites names its Pattern matches. Replacement uses regexp
// expansion syntax ($1, ${name}) and may contain "{count}".
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule compiles pattern.
func NewRule(pattern, replacement string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	return Rule{Pattern: re, Replacement: replacement}, nil
}

const countPlaceholder = "{count}"

// RegexReplace applies the first rule whose pattern matches anywhere in the
// file name; anchor the pattern with ^ and $ to match it whole. Every match
// is replaced and the result gives the new stem; the lowercased extension is
// appended unless the result already ends with it. When the replacement
// holds "{count}" it is replaced by 1, 2, ... until the name is not taken.
type RegexReplace struct {
	Rules []Rule
}

func (r RegexReplace) Format(name string, taken Taken) string {
	for _, rule := range r.Rules {
		if !rule.Pattern.MatchString(name) {
			continue
		}

		stem := rule.Pattern.ReplaceAllString(name, rule.Replacement)
		_, ext := splitName(name)

		build := func(count int) string {
			s := strings.ReplaceAll(stem, countPlaceholder, strconv.Itoa(count))
			if strings.HasSuffix(s, ext) {
				return s
			}
			return s + ext
		}

		if !strings.Contains(stem, countPlaceholder) {
			return build(0)
		}

		for count := 1; ; count++ {
			candidate := build(count)
			if taken == nil || !taken(candidate) {
				return candidate
			}
		}
	}

	return name
}
