package knowledge

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChunkMarkdown splits a markdown document into chunks, one per top-level
// (#) or second-level (##) heading. Text before the first heading becomes
// its own chunk. Empty chunks are dropped.
func ChunkMarkdown(text string) []string {
	var chunks []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		if c := strings.TrimSpace(strings.Join(current, "\n")); c != "" {
			chunks = append(chunks, c)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return chunks
}

// ChunkStructured flattens a structured document (YAML or JSON, both parse
// here) into one sentence-like chunk per fact, keyed by its section path.
// The top level must be a mapping. Key order in the source is preserved.
func ChunkStructured(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse structured knowledge: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("structured knowledge must be a mapping, got %v", root.Kind)
	}

	var chunks []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		section := root.Content[i].Value
		val := root.Content[i+1]

		switch val.Kind {
		case yaml.SequenceNode:
			items := make([]string, 0, len(val.Content))
			for _, it := range val.Content {
				items = append(items, scalarText(it))
			}
			chunks = append(chunks, fmt.Sprintf("%s: %s", section, strings.Join(items, ", ")))
		case yaml.MappingNode:
			for j := 0; j+1 < len(val.Content); j += 2 {
				key := val.Content[j].Value
				sub := val.Content[j+1]
				if sub.Kind == yaml.MappingNode {
					details := make([]string, 0, len(sub.Content)/2)
					for m := 0; m+1 < len(sub.Content); m += 2 {
						details = append(details, fmt.Sprintf("%s: %s", sub.Content[m].Value, scalarText(sub.Content[m+1])))
					}
					chunks = append(chunks, fmt.Sprintf("%s - %s: %s", section, key, strings.Join(details, ", ")))
				} else {
					chunks = append(chunks, fmt.Sprintf("%s - %s: %s", section, key, scalarText(sub)))
				}
			}
		default:
			chunks = append(chunks, fmt.Sprintf("%s: %s", section, scalarText(val)))
		}
	}
	return chunks, nil
}

// scalarText renders a node as flat text. Structures nested deeper than the
// flattening scheme covers are serialized back to YAML.
func scalarText(n *yaml.Node) string {
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return n.Value
	}
	return strings.TrimSpace(string(out))
}
