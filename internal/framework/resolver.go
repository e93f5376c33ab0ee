package framework

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	FlagFramework      = "framework"
	FlagFrameworkShort = "f"
	FlagUILibrary      = "ui-library"

	EnvFramework = "FRAMEWORK"
	EnvUILibrary = "UI_LIBRARY"
)

// Source names where a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceDefault Source = "default"
)

// Resolver determines the active framework and UI library once per instance.
type Resolver struct {
	logger    logrus.FieldLogger
	args      func() []string
	lookupEnv func(string) (string, bool)

	frameworkOnce sync.Once
	framework     Framework

	uiLibraryOnce sync.Once
	uiLibrary     UILibrary
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithArgs overrides the command-line source (os.Args[1:] by default).
func WithArgs(args func() []string) Option {
	return func(r *Resolver) { r.args = args }
}

// WithLookupEnv overrides the environment source (os.LookupEnv by default).
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(r *Resolver) { r.lookupEnv = lookup }
}

// NewResolver returns a Resolver reading process arguments and environment.
func NewResolver(logger logrus.FieldLogger, opts ...Option) *Resolver {
	r := &Resolver{
		logger:    logger,
		args:      func() []string { return os.Args[1:] },
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Framework returns the active framework. The first call resolves it from
// flags, then the environment, then the default; later calls return the same value.
func (r *Resolver) Framework() Framework {
	r.frameworkOnce.Do(func() {
		r.framework = r.resolveFramework()
	})
	return r.framework
}

// UILibrary returns the active UI library, resolved once. It is always the
// default for frameworks other than react.
func (r *Resolver) UILibrary() UILibrary {
	r.uiLibraryOnce.Do(func() {
		r.uiLibrary = r.resolveUILibrary()
	})
	return r.uiLibrary
}

// Info describes the active framework.
func (r *Resolver) Info() Info {
	return Describe(r.Framework())
}

func (r *Resolver) resolveFramework() Framework {
	flags := scanFlags(r.args())

	if flags.framework != "" {
		if f, ok := ParseFramework(flags.framework); ok {
			r.selected("framework", string(f), SourceFlag)
			return f
		}
		r.rejected("framework", flags.framework, string(DefaultFramework))
	}

	if raw := r.env(EnvFramework); raw != "" {
		if f, ok := ParseFramework(raw); ok {
			r.selected("framework", string(f), SourceEnv)
			return f
		}
		r.rejected("framework", raw, string(DefaultFramework))
	}

	r.selected("framework", string(DefaultFramework), SourceDefault)
	return DefaultFramework
}

func (r *Resolver) resolveUILibrary() UILibrary {
	f := r.Framework()
	flags := scanFlags(r.args())
	envValue := r.env(EnvUILibrary)

	if f != React {
		requested := flags.uiLibrary
		if requested == "" {
			requested = envValue
		}
		if requested != "" {
			r.logger.WithFields(logrus.Fields{
				"ui_library": requested,
				"framework":  f,
			}).Warnf("--%s is only supported for react; ignoring %q for %s", FlagUILibrary, requested, f)
		}
		r.selected("ui_library", string(DefaultUILibrary), SourceDefault)
		return DefaultUILibrary
	}

	if flags.uiLibrary != "" {
		if lib, ok := ParseUILibrary(flags.uiLibrary); ok {
			r.selected("ui_library", string(lib), SourceFlag)
			return lib
		}
		r.rejected("ui_library", flags.uiLibrary, string(DefaultUILibrary))
	}

	if envValue != "" {
		if lib, ok := ParseUILibrary(envValue); ok {
			r.selected("ui_library", string(lib), SourceEnv)
			return lib
		}
		r.rejected("ui_library", envValue, string(DefaultUILibrary))
	}

	r.selected("ui_library", string(DefaultUILibrary), SourceDefault)
	return DefaultUILibrary
}

// LogSummary logs the resolved configuration and how to switch frameworks.
func (r *Resolver) LogSummary() {
	f := r.Framework()
	info := Describe(f)

	r.logger.Infof("MCP server configured for %s framework", strings.ToUpper(string(f)))
	r.logger.Infof("Repository: %s", info.Repository)
	r.logger.Infof("File extension: %s", info.FileExtension)
	r.logger.Infof("Description: %s", info.Description)

	if f == React {
		lib := r.UILibrary()
		r.logger.Infof("UI library: %s (%s)", lib, lib.Label())
	}

	others := make([]string, 0, len(Frameworks())-1)
	for _, candidate := range Frameworks() {
		if candidate != f {
			others = append(others, string(candidate))
		}
	}
	alternatives := strings.Join(others, "|")
	r.logger.Infof("To switch frameworks: set %s=%s or use --%s %s", EnvFramework, alternatives, FlagFramework, alternatives)
}

func (r *Resolver) env(key string) string {
	value, ok := r.lookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func (r *Resolver) selected(field, value string, source Source) {
	entry := r.logger.WithFields(logrus.Fields{field: value, "source": source})
	if source == SourceDefault {
		entry.Infof("using default %s %q", field, value)
		return
	}
	entry.Infof("%s set to %q via %s", field, value, source)
}

func (r *Resolver) rejected(field, value, fallback string) {
	r.logger.WithFields(logrus.Fields{field: value}).Warnf("invalid %s %q; using default %q", field, value, fallback)
}

type flagValues struct {
	framework string
	uiLibrary string
}

func scanFlags(args []string) flagValues {
	return flagValues{
		framework: scanFlag(args, FlagFramework, FlagFrameworkShort),
		uiLibrary: scanFlag(args, FlagUILibrary, ""),
	}
}

// scanFlag looks up a single string flag in args, ignoring every other flag.
// Each flag is scanned on its own so a dangling value-less flag cannot swallow
// a different one, and the first occurrence wins. Parse errors are tolerated.
func scanFlag(args []string, name, shorthand string) string {
	fs := pflag.NewFlagSet("resolver", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	value := &firstValue{}
	fs.VarP(value, name, shorthand, "")
	// Registered so -h and --version do not abort the scan.
	fs.BoolP("help", "h", false, "")
	fs.Bool("version", false, "")

	_ = fs.Parse(args)
	return strings.TrimSpace(value.value)
}

// firstValue is a pflag.Value that keeps the first value it is given.
type firstValue struct {
	value string
	set   bool
}

func (v *firstValue) String() string { return v.value }
func (v *firstValue) Type() string   { return "string" }

func (v *firstValue) Set(s string) error {
	if !v.set {
		v.value = s
		v.set = true
	}
	return nil
}
