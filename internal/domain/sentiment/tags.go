package sentiment

import "strings"

// ParseTags turns raw comma-separated user input into an ordered hashtag
// list: split on commas, trim whitespace, prefix with '#' unless the user
// already typed one. Blank entries are dropped. Order is preserved because
// it determines the order of the run's output.
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))

	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}

	return tags
}
