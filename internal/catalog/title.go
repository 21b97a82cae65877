package catalog

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	// tokens appended by the artwork pipeline, stripped before matching
	pipelineTokens = regexp.MustCompile(`(?i)(_c?_?triptych|_?triptych|_?full|_?columns|_?rows|_c|_a)`)
	prefixNumber   = regexp.MustCompile(`^([A-Za-z]{1,4})[-_ ]?0*([0-9]{1,4})`)
	trailingNumber = regexp.MustCompile(`([0-9]{1,4})$`)
)

// deriveTitle extracts a display title like "MP-053" from a filename stem.
// It returns "" when the filename carries no usable prefix+number pattern,
// in which case the caller falls back to an index-based name.
func deriveTitle(fname, category string, idx int) string {
	if fname == "" {
		return ""
	}

	base := path.Base(strings.ReplaceAll(fname, `\`, "/"))
	if dec, err := url.PathUnescape(base); err == nil {
		base = dec
	}
	stem := strings.TrimSuffix(base, path.Ext(base))
	stem = pipelineTokens.ReplaceAllString(stem, "")

	if m := prefixNumber.FindStringSubmatch(stem); m != nil {
		return strings.ToUpper(m[1]) + "-" + padIndex3(atoiOrZero(m[2]))
	}
	if trailingNumber.MatchString(stem) {
		return fallbackTitle(category, idx)
	}
	return ""
}

// fallbackTitle is the index-based name used when no title can be derived.
func fallbackTitle(category string, idx int) string {
	if category == "MOVIE POSTERS" {
		return "MP-" + padIndex3(idx+1)
	}
	return category + " #" + padIndex3(idx+1)
}

func padIndex3(n int) string {
	return fmt.Sprintf("%03d", n)
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
