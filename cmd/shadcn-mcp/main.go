package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/mistakeknot/shadcn-mcp/internal/framework"
	"github.com/mistakeknot/shadcn-mcp/internal/logging"
	"github.com/mistakeknot/shadcn-mcp/internal/registry"
	"github.com/mistakeknot/shadcn-mcp/internal/resources"
	"github.com/mistakeknot/shadcn-mcp/internal/tools"
)

const (
	serverName = "shadcn-ui-mcp"
	version    = "0.1.0"

	envGitHubToken = "GITHUB_PERSONAL_ACCESS_TOKEN"
	envLogLevel    = "LOG_LEVEL"
	envLogFormat   = "LOG_FORMAT"
)

// options holds the flags main acts on. The framework selection flags are
// declared for --help only; the resolver reads them from argv itself.
type options struct {
	githubToken string
	logLevel    string
	showVersion bool
	showHelp    bool
	usage       string
	warnings    []string
}

// parseFlags never fails: a malformed command line (for example a dangling
// --framework) is reported as a warning and the server still starts.
func parseFlags(args []string) options {
	fs := pflag.NewFlagSet("shadcn-mcp", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringP(framework.FlagFramework, framework.FlagFrameworkShort, "", "component framework: react|svelte|vue|react-native (env "+framework.EnvFramework+")")
	fs.String(framework.FlagUILibrary, "", "React primitives: radix|base (env "+framework.EnvUILibrary+")")
	token := fs.StringP("github-api-key", "g", "", "GitHub personal access token (env "+envGitHubToken+")")
	logLevel := fs.String("log-level", "", "log level: debug|info|warn|error (env "+envLogLevel+")")
	showVersion := fs.Bool("version", false, "print version and exit")
	showHelp := fs.BoolP("help", "h", false, "show this help")

	opts := options{}
	if err := fs.Parse(args); err != nil {
		opts.warnings = append(opts.warnings, fmt.Sprintf("ignoring malformed command line: %v", err))
	}

	opts.githubToken = *token
	opts.logLevel = *logLevel
	opts.showVersion = *showVersion
	opts.showHelp = *showHelp
	opts.usage = fs.FlagUsages()
	return opts
}

func main() {
	opts := parseFlags(os.Args[1:])
	if opts.showHelp {
		fmt.Fprintf(os.Stderr, "Usage: shadcn-mcp [flags]\n\nServes shadcn/ui component metadata over MCP stdio.\n\nFlags:\n%s", opts.usage)
		os.Exit(0)
	}
	if opts.showVersion {
		fmt.Printf("%s %s\n", serverName, version)
		os.Exit(0)
	}

	logger, err := logging.New(logging.Options{
		Level:  firstNonEmpty(opts.logLevel, os.Getenv(envLogLevel)),
		Format: os.Getenv(envLogFormat),
		Output: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "shadcn-mcp: %v\n", err)
		os.Exit(1)
	}

	for _, w := range opts.warnings {
		logger.Warn(w)
	}

	// Resolve before serving so no request ever performs the first resolution.
	resolver := framework.NewResolver(logger)
	resolver.Framework()
	resolver.UILibrary()
	resolver.LogSummary()

	githubToken := firstNonEmpty(opts.githubToken, os.Getenv(envGitHubToken))
	if githubToken == "" {
		logger.Warn("No GitHub token configured; requests are limited to 60 per hour")
	}
	load := func(f framework.Framework, lib framework.UILibrary) (registry.Client, error) {
		return registry.Load(f, lib, registry.WithToken(githubToken))
	}

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	dispatcher := resources.NewDispatcher(resolver, load, logger)
	resources.Register(s, dispatcher)
	tools.RegisterAll(s, resolver, dispatcher)

	logger.Info("Starting MCP server on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.WithError(err).Error("Server error")
		os.Exit(1)
	}
	logger.Debug(registry.CacheStats())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
