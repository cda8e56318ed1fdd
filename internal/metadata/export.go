package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportYAML renders the bound metadata as YAML.
func ExportYAML(md *Metadata) ([]byte, error) {
	out, err := yaml.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return out, nil
}

// Summary returns one line per entity: name, table, attribute count and
// resolved associations.
func Summary(md *Metadata) string {
	var sb strings.Builder

	for _, e := range md.Entities {
		fmt.Fprintf(&sb, "%s (%s): %d attribute(s)", e.Name, e.Table, len(e.Attributes)+1)

		var assocs []string

		for _, a := range e.Attributes {
			switch {
			case len(a.JoinColumns) > 0:
				assocs = append(assocs, fmt.Sprintf("%s -> %s[%s]", a.Name, a.Target, strings.Join(a.JoinColumns, ", ")))
			case a.Collection != nil && a.Target != "":
				assocs = append(assocs, fmt.Sprintf("%s -> %s*", a.Name, a.Target))
			}
		}

		if len(assocs) > 0 {
			sb.WriteString("; ")
			sb.WriteString(strings.Join(assocs, "; "))
		}

		sb.WriteByte('\n')
	}

	if len(md.FilterDefs) > 0 {
		names := make([]string, 0, len(md.FilterDefs))
		for _, d := range md.FilterDefs {
			names = append(names, d.Name)
		}

		fmt.Fprintf(&sb, "filter definitions: %s\n", strings.Join(names, ", "))
	}

	return sb.String()
}
