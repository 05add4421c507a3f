package rest

import (
	"regexp"
	"strings"
)

var nextLinkPattern = regexp.MustCompile(`<(.*?)>;\s*rel="next"`)

// nextLink extracts the rel="next" URL from a Link response header.
// The header is split on commas and each segment matched individually;
// the last matching segment wins. Returns "" when no next link exists.
func nextLink(header string) string {
	var link string
	for _, segment := range strings.Split(header, ",") {
		if m := nextLinkPattern.FindStringSubmatch(segment); m != nil {
			link = m[1]
		}
	}
	return link
}
