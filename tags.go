package hledger

import "strings"

// Tag is one key-value pair carried in a transaction or posting comment.
// A keyless Tag holds free text that sat next to the structured tags: it is
// kept rather than discarded, so re-serializing a comment loses nothing.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseTags parses a comment string into its ordered tag sequence.
//
// hledger hands comments back as "\nkey: value\nkey2: value2\n"; within a
// line, ", "-separated segments are also accepted ("; category: food,
// shared: yes"). Leading ";" markers are stripped. Segments without a ":"
// become keyless free-text tags. Duplicate keys are allowed and preserved
// in order.
func ParseTags(comment string) []Tag {
	var tags []Tag
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), ";"))
		if line == "" {
			continue
		}
		for _, segment := range strings.Split(line, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			key, value, found := strings.Cut(segment, ":")
			if !found {
				tags = append(tags, Tag{Value: segment})
				continue
			}
			tags = append(tags, Tag{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
		}
	}
	return tags
}

// FormatTags serializes tags back into a single comment string, in input
// order, using the same "key: value" syntax ParseTags reads. Keyless tags
// serialize as their bare value. The result carries no ";" marker; the
// journal writer adds one when it emits a comment line.
func FormatTags(tags []Tag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		key := strings.TrimSpace(tag.Key)
		value := strings.TrimSpace(tag.Value)
		switch {
		case key != "" && value != "":
			parts = append(parts, key+": "+value)
		case key != "":
			parts = append(parts, key+":")
		case value != "":
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, ", ")
}
