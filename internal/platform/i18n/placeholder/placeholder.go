// Package placeholder handles the positional markers (%1, %2, ... %99) that
// the consuming client replaces with runtime values.
package placeholder

import (
	"sort"
	"strconv"
	"strings"
)

// MaxIndex is the highest placeholder number recognised.
const MaxIndex = 99

// token is one placeholder occurrence in a text.
type token struct {
	start int
	end   int
	index int
}

// scan finds every %N and %LN marker in text.
func scan(text string) []token {
	var out []token
	for i := 0; i < len(text); i++ {
		if text[i] != '%' {
			continue
		}
		j := i + 1
		if j < len(text) && text[j] == 'L' {
			j++
		}
		digits := 0
		for j+digits < len(text) && digits < 2 && text[j+digits] >= '0' && text[j+digits] <= '9' {
			digits++
		}
		if digits == 0 {
			continue
		}
		index, _ := strconv.Atoi(text[j : j+digits])
		if index < 1 || index > MaxIndex {
			continue
		}
		out = append(out, token{start: i, end: j + digits, index: index})
		i = j + digits - 1
	}
	return out
}

// Extract returns the sorted, de-duplicated placeholder numbers used in text.
func Extract(text string) []int {
	seen := map[int]struct{}{}
	for _, tok := range scan(text) {
		seen[tok.index] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for index := range seen {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether source and translation use exactly the same set of
// placeholders. Order and repetition do not matter.
func Equal(source string, translation string) bool {
	a := Extract(source)
	b := Extract(translation)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Diff returns the placeholders missing from translation and the ones it adds.
func Diff(source string, translation string) (missing []int, extra []int) {
	inSource := toSet(Extract(source))
	inTranslation := toSet(Extract(translation))
	for index := range inSource {
		if _, ok := inTranslation[index]; !ok {
			missing = append(missing, index)
		}
	}
	for index := range inTranslation {
		if _, ok := inSource[index]; !ok {
			extra = append(extra, index)
		}
	}
	sort.Ints(missing)
	sort.Ints(extra)
	return missing, extra
}

// Format renders a placeholder set as "%1 %2" for messages.
func Format(indexes []int) string {
	if len(indexes) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(indexes))
	for _, index := range indexes {
		parts = append(parts, "%"+strconv.Itoa(index))
	}
	return strings.Join(parts, " ")
}

// Substitute replaces %N with args[N-1]. Placeholders without a matching
// argument are left untouched.
func Substitute(text string, args ...string) string {
	tokens := scan(text)
	if len(tokens) == 0 || len(args) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, tok := range tokens {
		if tok.index > len(args) {
			continue
		}
		b.WriteString(text[last:tok.start])
		b.WriteString(args[tok.index-1])
		last = tok.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// ToPrintf converts text into an x/text/message format string where %N
// becomes %[N]v and literal percent signs are escaped.
func ToPrintf(text string) string {
	return rewrite(text, func(index int) string {
		return "%[" + strconv.Itoa(index) + "]v"
	}, "%%")
}

// ToTemplate converts text into a text/template string where %N becomes
// {{.ArgN}}, the field naming used by the go-i18n exports.
func ToTemplate(text string) string {
	return rewrite(text, func(index int) string {
		return "{{.Arg" + strconv.Itoa(index) + "}}"
	}, "%")
}

// TemplateData builds the template data matching ToTemplate output.
func TemplateData(args ...string) map[string]string {
	data := make(map[string]string, len(args))
	for i, arg := range args {
		data["Arg"+strconv.Itoa(i+1)] = arg
	}
	return data
}

func rewrite(text string, replace func(int) string, percent string) string {
	tokens := scan(text)
	var b strings.Builder
	b.Grow(len(text) + 8*len(tokens))
	next := 0
	for i := 0; i < len(text); i++ {
		if next < len(tokens) && tokens[next].start == i {
			b.WriteString(replace(tokens[next].index))
			i = tokens[next].end - 1
			next++
			continue
		}
		if text[i] == '%' {
			b.WriteString(percent)
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

func toSet(values []int) map[int]struct{} {
	out := make(map[int]struct{}, len(values))
	for _, value := range values {
		out[value] = struct{}{}
	}
	return out
}
