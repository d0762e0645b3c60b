package reorder

import "strings"

// NamespaceMarker is the first name part under which the first two parts
// form a single group, e.g. "tool.widget".
const NamespaceMarker = "tool"

// GroupKey coarsens a dotted name for ordering and blank-line decisions.
//
//	GroupKey("tool.widget.deps") == "tool.widget"
//	GroupKey("project.urls")     == "project"
//	GroupKey("")                 == ""
func GroupKey(name string) string {
	parts := strings.SplitN(name, ".", 3)
	if parts[0] == NamespaceMarker && len(parts) >= 2 {
		return parts[0] + "." + parts[1]
	}
	return parts[0]
}
