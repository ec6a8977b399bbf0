package vocab

import (
	"regexp"
	"strings"
)

var (
	wikiLinkPipedRe = regexp.MustCompile(`\[\[[^\]|]*\|([^\]]*)\]\]`)
	wikiLinkRe      = regexp.MustCompile(`\[\[([^\]]*)\]\]`)
	templateRe      = regexp.MustCompile(`\{\{[^}]*\}\}`)
	htmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	refRe           = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`)
	boldItalicRe    = regexp.MustCompile(`'{2,}`)
)

var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&ndash;", "-",
	"&mdash;", "-",
)

// CleanMarkup strips wiki link syntax, template syntax, HTML tags and
// entities from raw source text. Sources return marked-up fragments; nothing
// downstream should ever see them.
func CleanMarkup(s string) string {
	s = refRe.ReplaceAllString(s, "")
	s = wikiLinkPipedRe.ReplaceAllString(s, "$1")
	s = wikiLinkRe.ReplaceAllString(s, "$1")
	s = templateRe.ReplaceAllString(s, "")
	s = boldItalicRe.ReplaceAllString(s, "")
	s = htmlEntities.Replace(s)
	s = htmlTagRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// HasMarkupArtifacts reports whether residual markup survived cleanup.
// Used by the quality gate to reject half-cleaned content.
func HasMarkupArtifacts(s string) bool {
	for _, marker := range []string{"[[", "]]", "{{", "}}", "</", "&#", "<ref"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return htmlTagRe.MatchString(s)
}
