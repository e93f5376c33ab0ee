package registry

import (
	"context"
	"fmt"
	"maps"

	"github.com/mistakeknot/shadcn-mcp/internal/framework"
)

// Client is the capability set every framework backend exposes.
type Client interface {
	AvailableComponents(ctx context.Context) ([]string, error)
	Paths() map[string]string
}

// Source locates a framework's component registry on GitHub.
type Source struct {
	Owner        string
	Repo         string
	Ref          string
	Paths        map[string]string
	ComponentDir string
	Extensions   []string
}

var (
	reactRadixSource = Source{
		Owner:        "shadcn-ui",
		Repo:         "ui",
		Ref:          "main",
		Paths:        map[string]string{PathNewYorkV4: "apps/v4/registry/new-york-v4"},
		ComponentDir: "ui",
		Extensions:   []string{".tsx", ".ts"},
	}
	reactBaseSource = Source{
		Owner:        "shadcn-ui",
		Repo:         "ui",
		Ref:          "main",
		Paths:        map[string]string{PathCurrentRegistry: "apps/v4/registry/bases/base"},
		ComponentDir: "ui",
		Extensions:   []string{".tsx", ".ts"},
	}
	svelteSource = Source{
		Owner:        "huntabyte",
		Repo:         "shadcn-svelte",
		Ref:          "main",
		Paths:        map[string]string{PathCurrentRegistry: "docs/src/lib/registry"},
		ComponentDir: "ui",
		Extensions:   []string{".svelte", ".ts"},
	}
	vueSource = Source{
		Owner:        "unovue",
		Repo:         "shadcn-vue",
		Ref:          "dev",
		Paths:        map[string]string{PathNewYorkV4: "apps/v4/registry/new-york-v4"},
		ComponentDir: "ui",
		Extensions:   []string{".vue", ".ts"},
	}
	reactNativeSource = Source{
		Owner:        "founded-labs",
		Repo:         "react-native-reusables",
		Ref:          "main",
		Paths:        map[string]string{PathCurrentRegistry: "packages/registry/src/new-york"},
		ComponentDir: "components/ui",
		Extensions:   []string{".tsx", ".ts"},
	}
)

// SourceFor returns the registry location for a framework and UI library.
// The UI library only distinguishes React sources.
func SourceFor(f framework.Framework, lib framework.UILibrary) (Source, error) {
	var s Source
	switch f {
	case framework.React:
		s = reactRadixSource
		if lib == framework.Base {
			s = reactBaseSource
		}
	case framework.Svelte:
		s = svelteSource
	case framework.Vue:
		s = vueSource
	case framework.ReactNative:
		s = reactNativeSource
	default:
		return Source{}, fmt.Errorf("unsupported framework %q", f)
	}
	s.Paths = maps.Clone(s.Paths)
	return s, nil
}

// Load returns the backend client for a framework. Callers do not need to
// cache it; the listing cache is shared across clients.
func Load(f framework.Framework, lib framework.UILibrary, opts ...Option) (Client, error) {
	s, err := SourceFor(f, lib)
	if err != nil {
		return nil, err
	}
	return NewGitHubClient(s, opts...), nil
}
