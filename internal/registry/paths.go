package registry

// Known path keys, in the order DefaultPath checks them.
const (
	PathBlocks          = "BLOCKS"
	PathCurrentRegistry = "CURRENT_REGISTRY_PATH"
	PathNewYorkV4       = "NEW_YORK_V4_PATH"
)

var defaultPathOrder = []string{PathBlocks, PathCurrentRegistry, PathNewYorkV4}

// DefaultPath picks the canonical registry root from a backend's paths.
// The first of BLOCKS, CURRENT_REGISTRY_PATH, NEW_YORK_V4_PATH present wins.
func DefaultPath(paths map[string]string) (string, bool) {
	for _, key := range defaultPathOrder {
		if p, ok := paths[key]; ok {
			return p, true
		}
	}
	return "", false
}
