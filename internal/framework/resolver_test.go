package framework

import (
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(args []string, env map[string]string) (*Resolver, *test.Hook) {
	logger, hook := test.NewNullLogger()
	r := NewResolver(logger,
		WithArgs(func() []string { return args }),
		WithLookupEnv(func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}),
	)
	return r, hook
}

func entriesAt(hook *test.Hook, level logrus.Level) []*logrus.Entry {
	var out []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func TestFrameworkFlagIsCaseInsensitive(t *testing.T) {
	for _, value := range []string{"react", "REACT", "React", "rEaCt"} {
		t.Run(value, func(t *testing.T) {
			r, _ := newTestResolver([]string{"--framework", value}, nil)
			assert.Equal(t, React, r.Framework())
		})
	}
}

func TestFrameworkPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		env    map[string]string
		want   Framework
		source Source
	}{
		{"long flag", []string{"--framework", "svelte"}, nil, Svelte, SourceFlag},
		{"short flag", []string{"-f", "vue"}, nil, Vue, SourceFlag},
		{"equals form", []string{"--framework=react-native"}, nil, ReactNative, SourceFlag},
		{"flag beats env", []string{"-f", "svelte"}, map[string]string{EnvFramework: "vue"}, Svelte, SourceFlag},
		{"env", nil, map[string]string{EnvFramework: "Vue"}, Vue, SourceEnv},
		{"unrelated flags", []string{"--github-api-key", "tok", "-f", "vue"}, nil, Vue, SourceFlag},
		{"default", nil, nil, React, SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, hook := newTestResolver(tt.args, tt.env)
			require.Equal(t, tt.want, r.Framework())

			info := entriesAt(hook, logrus.InfoLevel)
			require.Len(t, info, 1)
			assert.Equal(t, tt.source, info[0].Data["source"])
			assert.Equal(t, string(tt.want), info[0].Data["framework"])
		})
	}
}

func TestFrameworkInvalidFlagFallsThrough(t *testing.T) {
	t.Run("to default", func(t *testing.T) {
		r, hook := newTestResolver([]string{"--framework", "cobol"}, nil)
		assert.Equal(t, React, r.Framework())

		warnings := entriesAt(hook, logrus.WarnLevel)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, "cobol")
		assert.Contains(t, warnings[0].Message, "react")
	})

	t.Run("to environment", func(t *testing.T) {
		r, hook := newTestResolver([]string{"-f", "cobol"}, map[string]string{EnvFramework: "svelte"})
		assert.Equal(t, Svelte, r.Framework())
		assert.Len(t, entriesAt(hook, logrus.WarnLevel), 1)
	})
}

func TestFrameworkMissingFlagValueIsIgnored(t *testing.T) {
	r, hook := newTestResolver([]string{"--framework"}, map[string]string{EnvFramework: "vue"})
	assert.Equal(t, Vue, r.Framework())
	assert.Empty(t, entriesAt(hook, logrus.WarnLevel))
}

func TestFrameworkIsMemoized(t *testing.T) {
	args := []string{"--framework", "svelte"}
	env := map[string]string{}
	r, hook := newTestResolver(nil, nil)
	r.args = func() []string { return args }
	r.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	first := r.Framework()
	args = []string{"--framework", "vue"}
	env[EnvFramework] = "react-native"
	second := r.Framework()

	assert.Equal(t, Svelte, first)
	assert.Equal(t, first, second)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestFrameworkConcurrentFirstCalls(t *testing.T) {
	r, hook := newTestResolver([]string{"-f", "vue"}, nil)

	var wg sync.WaitGroup
	results := make([]Framework, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Framework()
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, Vue, got)
	}
	assert.Len(t, hook.AllEntries(), 1)
}

func TestUILibraryForReact(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		want     UILibrary
		warnings int
	}{
		{"default", nil, nil, Radix, 0},
		{"flag", []string{"--ui-library", "BASE"}, nil, Base, 0},
		{"env", nil, map[string]string{EnvUILibrary: "base"}, Base, 0},
		{"flag beats env", []string{"--ui-library", "radix"}, map[string]string{EnvUILibrary: "base"}, Radix, 0},
		{"invalid flag falls to env", []string{"--ui-library", "mui"}, map[string]string{EnvUILibrary: "base"}, Base, 1},
		{"invalid flag falls to default", []string{"--ui-library", "mui"}, nil, Radix, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, hook := newTestResolver(tt.args, tt.env)
			assert.Equal(t, tt.want, r.UILibrary())
			assert.Len(t, entriesAt(hook, logrus.WarnLevel), tt.warnings)
		})
	}
}

func TestUILibraryIgnoredForOtherFrameworks(t *testing.T) {
	for _, f := range []Framework{Svelte, Vue, ReactNative} {
		t.Run(string(f), func(t *testing.T) {
			r, hook := newTestResolver([]string{"-f", string(f), "--ui-library", "base"}, nil)
			assert.Equal(t, Radix, r.UILibrary())

			warnings := entriesAt(hook, logrus.WarnLevel)
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0].Message, "ignoring \"base\"")
		})
	}

	t.Run("env value also warns", func(t *testing.T) {
		r, hook := newTestResolver(nil, map[string]string{EnvFramework: "vue", EnvUILibrary: "base"})
		assert.Equal(t, Radix, r.UILibrary())
		assert.Len(t, entriesAt(hook, logrus.WarnLevel), 1)
	})

	t.Run("no value no warning", func(t *testing.T) {
		r, hook := newTestResolver([]string{"-f", "svelte"}, nil)
		assert.Equal(t, Radix, r.UILibrary())
		assert.Empty(t, entriesAt(hook, logrus.WarnLevel))
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		framework Framework
		repo      string
		ext       string
	}{
		{React, "shadcn-ui/ui", ".tsx"},
		{Svelte, "huntabyte/shadcn-svelte", ".svelte"},
		{Vue, "unovue/shadcn-vue", ".vue"},
		{ReactNative, "founded-labs/react-native-reusables", ".tsx"},
	}
	for _, tt := range tests {
		t.Run(string(tt.framework), func(t *testing.T) {
			info := Describe(tt.framework)
			assert.Equal(t, tt.framework, info.Current)
			assert.Equal(t, tt.repo, info.Repository)
			assert.Equal(t, tt.ext, info.FileExtension)
			assert.NotEmpty(t, info.Description)
		})
	}
}

func TestLogSummaryMentionsAlternatives(t *testing.T) {
	r, hook := newTestResolver([]string{"-f", "vue"}, nil)
	r.LogSummary()

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.True(t, strings.Contains(last.Message, "react|svelte|react-native"), last.Message)
	for _, e := range hook.AllEntries() {
		assert.NotContains(t, e.Message, "UI library:")
	}
}

func TestSelectionFlagsAreScannedIndependently(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		framework Framework
		uiLibrary UILibrary
	}{
		{"dangling ui library before framework", []string{"--ui-library", "--framework", "svelte"}, Svelte, Radix},
		{"dangling framework before ui library", []string{"--framework", "--ui-library", "base"}, React, Base},
		{"first framework wins", []string{"--framework", "vue", "--framework", "svelte"}, Vue, Radix},
		{"first framework wins across forms", []string{"-f", "react", "--framework=svelte", "--ui-library", "base", "--ui-library", "radix"}, React, Base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver(tt.args, nil)
			assert.Equal(t, tt.framework, r.Framework())
			assert.Equal(t, tt.uiLibrary, r.UILibrary())
		})
	}
}

func TestUILibraryNonReactLogsDefaultSelection(t *testing.T) {
	r, hook := newTestResolver([]string{"-f", "svelte"}, nil)
	require.Equal(t, Radix, r.UILibrary())

	var uiEntries []*logrus.Entry
	for _, e := range entriesAt(hook, logrus.InfoLevel) {
		if _, ok := e.Data["ui_library"]; ok {
			uiEntries = append(uiEntries, e)
		}
	}
	require.Len(t, uiEntries, 1)
	assert.Equal(t, SourceDefault, uiEntries[0].Data["source"])
	assert.Equal(t, string(Radix), uiEntries[0].Data["ui_library"])
}

func TestUILibraryIsMemoized(t *testing.T) {
	args := []string{"--ui-library", "base"}
	env := map[string]string{}
	r, hook := newTestResolver(nil, nil)
	r.args = func() []string { return args }
	r.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	first := r.UILibrary()
	entries := len(hook.AllEntries())
	args = []string{"--ui-library", "radix"}
	env[EnvUILibrary] = "radix"
	second := r.UILibrary()

	assert.Equal(t, Base, first)
	assert.Equal(t, first, second)
	assert.Len(t, hook.AllEntries(), entries)
}
