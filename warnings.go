package pageflow

import "strings"

// Warning codes reported by terminal operations.
const (
	// WarnLayout covers non-fatal layout issues: unsplittable blocks
	// taller than a column, balancing searches that did not converge.
	WarnLayout = "layout"
)

// Warning is a non-fatal issue encountered during pagination. Warnings do
// not stop the layout pass; they describe output the caller may want to
// inspect.
type Warning struct {
	// Code classifies the warning.
	Code string

	// Message is a human-readable description.
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	if w.Code == "" {
		return w.Message
	}
	return w.Code + ": " + w.Message
}

// FormatWarnings joins a list of warnings into a single newline-separated
// string, one warning per line. It returns "" for an empty list.
//
// Example:
//
//	result, warnings, err := pageflow.FromYAML("doc.yaml").Paginate()
//	if len(warnings) > 0 {
//	    log.Println(pageflow.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
