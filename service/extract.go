package service

import (
	"regexp"
	"strings"
)

var (
	hashtagRe = regexp.MustCompile(`(^|[^\pL\pN_&])#([\pL\pN_][\pL\pN_-]*)`)
	urlRe     = regexp.MustCompile(`https?://[^\s<>"'\]]+`)
)

// ExtractHashtags pulls hashtags out of free text. Tags are lowercased,
// deduplicated and returned in order of first appearance, without the '#'.
func ExtractHashtags(text string) []string {
	matches := hashtagRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[2])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeHashtag maps user input ("#Work", "WORK") to the stored form.
func NormalizeHashtag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, "#"))
}

// ExtractURLs pulls http(s) URLs out of free text, deduplicated, in order of
// first appearance. Trailing sentence punctuation is stripped.
func ExtractURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	urls := make([]string, 0, len(matches))
	for _, raw := range matches {
		u := strings.TrimRight(raw, ".,;:!?")
		// Keep balanced parens (wiki-style paths), drop closers from
		// surrounding text like "(see https://x)" or markdown links.
		for strings.HasSuffix(u, ")") && strings.Count(u, ")") > strings.Count(u, "(") {
			u = strings.TrimSuffix(u, ")")
			u = strings.TrimRight(u, ".,;:!?")
		}
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}
