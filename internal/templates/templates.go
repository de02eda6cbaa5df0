package templates

import "strings"

// Template is one migration script scaffold.
type Template struct {
	// Name is the identifier accepted by create --template.
	Name string
	// Extension is the filename suffix, including the dot.
	Extension string
	// Content is the raw script with the {{DESCRIPTION}} placeholder.
	Content string
}

// DefaultName is the template used when none is requested.
const DefaultName = "bash"

// catalog order is the order shown by create --list-templates.
var catalog = []Template{
	{Name: "bash", Extension: ".sh", Content: bashTemplate},
	{Name: "ts", Extension: ".ts", Content: tsTemplate},
	{Name: "python", Extension: ".py", Content: pythonTemplate},
	{Name: "node", Extension: ".js", Content: nodeTemplate},
	{Name: "ruby", Extension: ".rb", Content: rubyTemplate},
}

// Get returns the named template.
func Get(name string) (Template, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Names returns all template names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}

// Render substitutes the {{DESCRIPTION}} placeholder in a template.
func Render(t Template, description string) string {
	return strings.ReplaceAll(t.Content, "{{DESCRIPTION}}", description)
}
