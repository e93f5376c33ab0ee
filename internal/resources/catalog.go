package resources

import "slices"

const (
	URIComponents    = "resource:get_components"
	URIThemeMetadata = "resource:get_theme_metadata"

	MIMEJSON = "application/json"
)

// Descriptor is a named, URI-addressed resource advertised to MCP clients.
type Descriptor struct {
	Name        string
	Description string
	URI         string
	MIMEType    string
}

// get_components historically declared text/plain while serving JSON; it now
// declares the type it serves.
var catalog = []Descriptor{
	{
		Name:        "get_components",
		Description: "List of available shadcn/ui components that can be used in the project",
		URI:         URIComponents,
		MIMEType:    MIMEJSON,
	},
	{
		Name:        "get_theme_metadata",
		Description: "Returns metadata about the currently configured theme",
		URI:         URIThemeMetadata,
		MIMEType:    MIMEJSON,
	},
}

// Catalog returns the resource descriptors in registration order.
func Catalog() []Descriptor {
	return slices.Clone(catalog)
}
