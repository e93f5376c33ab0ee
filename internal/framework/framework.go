package framework

import "strings"

// Framework is a supported UI component ecosystem.
type Framework string

const (
	React       Framework = "react"
	Svelte      Framework = "svelte"
	Vue         Framework = "vue"
	ReactNative Framework = "react-native"

	DefaultFramework = React
)

// UILibrary selects the primitive set used by the React registry.
type UILibrary string

const (
	Radix UILibrary = "radix"
	Base  UILibrary = "base"

	DefaultUILibrary = Radix
)

// Frameworks lists every supported framework in display order.
func Frameworks() []Framework {
	return []Framework{React, Svelte, Vue, ReactNative}
}

// ParseFramework matches raw case-insensitively against the known frameworks.
func ParseFramework(raw string) (Framework, bool) {
	candidate := Framework(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range Frameworks() {
		if candidate == f {
			return f, true
		}
	}
	return "", false
}

// ParseUILibrary matches raw case-insensitively against radix and base.
func ParseUILibrary(raw string) (UILibrary, bool) {
	switch UILibrary(strings.ToLower(strings.TrimSpace(raw))) {
	case Radix:
		return Radix, true
	case Base:
		return Base, true
	}
	return "", false
}

// Label is the human-readable primitive set name.
func (l UILibrary) Label() string {
	if l == Base {
		return "Base UI"
	}
	return "Radix UI"
}

// Info is the descriptive data derived from a Framework.
type Info struct {
	Current       Framework `json:"current"`
	Repository    string    `json:"repository"`
	FileExtension string    `json:"file_extension"`
	Description   string    `json:"description"`
}

var infoTable = map[Framework]Info{
	React: {
		Repository:    "shadcn-ui/ui",
		FileExtension: ".tsx",
		Description:   "React components from shadcn/ui v4",
	},
	Svelte: {
		Repository:    "huntabyte/shadcn-svelte",
		FileExtension: ".svelte",
		Description:   "Svelte components from shadcn-svelte",
	},
	Vue: {
		Repository:    "unovue/shadcn-vue",
		FileExtension: ".vue",
		Description:   "Vue components from shadcn-vue",
	},
	ReactNative: {
		Repository:    "founded-labs/react-native-reusables",
		FileExtension: ".tsx",
		Description:   "React Native components from react-native-reusables",
	},
}

// Describe returns the repository, extension, and description for f.
// Unknown values describe the default framework.
func Describe(f Framework) Info {
	info, ok := infoTable[f]
	if !ok {
		f = DefaultFramework
		info = infoTable[f]
	}
	info.Current = f
	return info
}
