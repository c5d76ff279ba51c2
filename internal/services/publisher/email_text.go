package publisher

import (
	"regexp"
	"strings"
)

// Email copy arrives from the generator as loosely structured text. Before a
// real send we pull out the subject line, stamp the legally required ad
// disclosure and make sure the body carries a working link. Every step here
// is pure and idempotent so re-publishing the same asset cannot stack
// markers or links.

const adDisclosure = "[פרסומת] "
const defaultLink = "https://example.com"

var (
	subjectTagRe    = regexp.MustCompile(`\s*\[[^\]]{1,30}\]\s*`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
	bodyTagRe       = regexp.MustCompile(`\[[^\]\n]{1,30}\]`)
	inlineSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
	anyURLRe        = regexp.MustCompile(`https?://`)
	linkWordRe      = regexp.MustCompile(`(^|[^\p{L}\p{N}_])קישור([^\p{L}\p{N}_]|$)`)
	shortLinkEnRe   = regexp.MustCompile(`(?i)<short link>`)
	linkTokenEnRe   = regexp.MustCompile(`\[(?i:link)\]`)
	shortLinkHebRe  = regexp.MustCompile(`‪?<קישור קצר>‬?`)
	linkTokenHebRe  = regexp.MustCompile(`\[קישור\]`)
	subjectPrefixRe = regexp.MustCompile(`(?i)^subject:\s*`)
	preheaderPrefix = regexp.MustCompile(`(?i)^preheader:\s*`)
)

// EmailParts is generator output split for a mail API call.
type EmailParts struct {
	Subject   string
	Preheader string
	Body      string
}

// SplitEmail extracts "Subject:" and "Preheader:" lines when they appear in
// the first few lines of the text; everything else becomes the body.
func SplitEmail(text string) EmailParts {
	lines := strings.Split(text, "\n")
	parts := EmailParts{}
	var bodyLines []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i < 5 && parts.Subject == "" && subjectPrefixRe.MatchString(trimmed) {
			parts.Subject = strings.TrimSpace(subjectPrefixRe.ReplaceAllString(trimmed, ""))
			continue
		}
		if i < 5 && parts.Preheader == "" && preheaderPrefix.MatchString(trimmed) {
			parts.Preheader = strings.TrimSpace(preheaderPrefix.ReplaceAllString(trimmed, ""))
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	parts.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	return parts
}

// FinalizeSubject strips leftover bracket tags, collapses whitespace and
// prefixes the ad disclosure marker exactly once.
func FinalizeSubject(subject string) string {
	subject = subjectTagRe.ReplaceAllString(subject, " ")
	subject = multiSpaceRe.ReplaceAllString(subject, " ")
	subject = strings.TrimSpace(subject)
	if !strings.HasPrefix(subject, strings.TrimSpace(adDisclosure)) {
		subject = adDisclosure + subject
	}
	return subject
}

// FinalizeBody strips bracket tags, substitutes link placeholders with the
// campaign link and tidies whitespace. link is scheme-normalized; when empty
// a neutral default is used so copy never goes out with a dead placeholder.
func FinalizeBody(body, link string) string {
	link = normalizeLink(link)

	// Placeholders go first: the generic tag strip below would eat them.
	for _, re := range []*regexp.Regexp{linkTokenHebRe, shortLinkHebRe, linkTokenEnRe, shortLinkEnRe} {
		body = re.ReplaceAllString(body, link)
	}
	body = bodyTagRe.ReplaceAllString(body, "")
	if !anyURLRe.MatchString(body) {
		body = linkWordRe.ReplaceAllString(body, "${1}"+link+"${2}")
	}
	if !anyURLRe.MatchString(body) {
		body = strings.TrimRight(body, "\n ") + "\n\n" + link
	}

	body = inlineSpaceRe.ReplaceAllString(body, " ")
	body = blankLinesRe.ReplaceAllString(body, "\n\n")
	return strings.TrimSpace(body)
}

func normalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return defaultLink
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "https://" + link
	}
	return link
}
