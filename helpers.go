package pubstatic

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"unicode"
)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// KebabCase converts a tag to its URL-safe form: words are split on
// non-alphanumerics, lower-to-upper case changes, acronym ends and
// letter/digit changes, lowercased and joined with '-'.
//
//	"Ruby on Rails" -> "ruby-on-rails"
//	"rubyOnRails"   -> "ruby-on-rails"
//	"XMLHttp"       -> "xml-http"
//	"es6"           -> "es-6"
func KebabCase(s string) string {
	runes := []rune(apostrophes.Replace(s))
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsDigit(prev) != unicode.IsDigit(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return strings.Join(words, "-")
}

// TagPath returns the listing page path for a normalized tag value.
func TagPath(value string) string {
	return "/tags/" + value + "/"
}

// TagPagePath returns the path of page n of a tag listing. Page 1 is the
// listing root.
func TagPagePath(value string, n int) string {
	if n <= 1 {
		return TagPath(value)
	}
	return TagPath(value) + "page/" + strconv.Itoa(n) + "/"
}

// TagHeader returns the listing heading for count posts tagged with tag.
func TagHeader(count int, tag string) string {
	return Pluralize(count, "post", "posts") + ` tagged with "` + tag + `"`
}

// Pluralize formats count with the singular word when count is exactly 1.
func Pluralize(count int, singular, plural string) string {
	word := plural
	if count == 1 {
		word = singular
	}
	return strconv.Itoa(count) + " " + word
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimSlashes(p string) string {
	return strings.Trim(p, "/")
}
