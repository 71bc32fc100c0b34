package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-command/dispatcher"

	contentgraph "github.com/goliatone/go-contentgraph"
)

var version = "dev"

// CLI holds global flags shared by every subcommand.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"contentgraph.yaml"`
	LogLevel  string           `name:"log-level" help:"Log level (trace|debug|info|warn|error)"`
	LogFormat string           `name:"log-format" help:"Structured log format (json|console|pretty); selects the go-logger provider"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Map content files into the node graph"`
}

// AfterApply normalises the logging flags once parsing is done.
func (c *CLI) AfterApply() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	return nil
}

// apply overlays the global flags on cfg.
func (c *CLI) apply(cfg *contentgraph.Config) {
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = c.LogFormat
	}
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	ContentDir     string `name:"content-dir" help:"Content root directory (overrides content_dir)"`
	Output         string `short:"o" help:"Write the graph as JSON to this file"`
	FailOnDangling bool   `name:"fail-on-dangling" help:"Exit with an error when a reference points at a missing node"`
	MetricsFile    string `name:"metrics-file" help:"Write registration metrics in the Prometheus text format"`
}

func (b *BuildCmd) Run(ctx context.Context, root *CLI, out io.Writer) error {
	cfg, err := contentgraph.LoadConfig(root.Config)
	if err != nil {
		return err
	}
	root.apply(&cfg)
	b.apply(&cfg)

	module, err := contentgraph.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer module.Close()

	var result *contentgraph.BuildResult
	sub := dispatcher.SubscribeCommand(module.BuildHandler(func(r *contentgraph.BuildResult) {
		result = r
	}))
	defer sub.Unsubscribe()

	buildErr := dispatcher.Dispatch(ctx, contentgraph.BuildGraphCommand{
		OutputPath:     cfg.Output.Path,
		FailOnDangling: cfg.Output.FailOnDangling,
	})
	if result != nil {
		printSummary(out, result)
	}

	if cfg.Metrics.Enabled {
		if err := module.WriteMetrics(cfg.Metrics.TextfilePath); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return buildErr
}

func (b *BuildCmd) apply(cfg *contentgraph.Config) {
	if b.ContentDir != "" {
		cfg.ContentDir = b.ContentDir
	}
	if b.Output != "" {
		cfg.Output.Path = b.Output
	}
	if b.FailOnDangling {
		cfg.Output.FailOnDangling = true
	}
	if b.MetricsFile != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.TextfilePath = b.MetricsFile
	}
}

func printSummary(out io.Writer, result *contentgraph.BuildResult) {
	fmt.Fprintf(out, "mapped %d files into %d nodes\n", result.FileCount(), len(result.Nodes))
	for _, ref := range result.Dangling {
		fmt.Fprintf(out, "dangling: %s\n", ref)
	}
}

func newParser(cli *CLI, ctx context.Context, out io.Writer, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("contentgraph"),
		kong.Description("Build a linked content graph from JSON content files."),
		kong.Vars{"version": version},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	parser, err := newParser(&cli, ctx, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	kctx.FatalIfErrorf(kctx.Run(&cli))
}
