package feed

import "strings"

// ResolveParams substitutes {{name}} placeholders in a filter value template
// with the caller's dynamic params. Resolution is best-effort: placeholders
// without a matching param are left verbatim.
func ResolveParams(template string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	resolved := template
	for name, value := range params {
		resolved = strings.ReplaceAll(resolved, "{{"+name+"}}", value)
	}
	return resolved
}
