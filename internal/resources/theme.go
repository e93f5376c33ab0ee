package resources

import (
	"context"

	"github.com/mistakeknot/shadcn-mcp/internal/framework"
)

// ThemeMetadata describes the component source the server is configured for.
type ThemeMetadata struct {
	Framework     framework.Framework `json:"framework"`
	UILibrary     framework.UILibrary `json:"ui_library,omitempty"`
	Primitives    string              `json:"primitives"`
	Repository    string              `json:"repository"`
	FileExtension string              `json:"file_extension"`
	Description   string              `json:"description"`
}

var primitivesByFramework = map[framework.Framework]string{
	framework.Svelte:      "Bits UI",
	framework.Vue:         "Reka UI",
	framework.ReactNative: "RN Primitives",
}

func (d *Dispatcher) themeMetadata(_ context.Context) Result {
	f := d.config.Framework()
	info := framework.Describe(f)

	meta := ThemeMetadata{
		Framework:     f,
		Primitives:    primitivesByFramework[f],
		Repository:    info.Repository,
		FileExtension: info.FileExtension,
		Description:   info.Description,
	}
	if f == framework.React {
		lib := d.config.UILibrary()
		meta.UILibrary = lib
		meta.Primitives = lib.Label()
	}
	return Result{Value: meta}
}
