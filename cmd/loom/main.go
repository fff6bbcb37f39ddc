// Command loom runs the multi-workflow agent server and its client modes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/crenwick/loom"
	"github.com/crenwick/loom/client"
	"github.com/crenwick/loom/config"
	"github.com/crenwick/loom/logging"
	"github.com/crenwick/loom/server"
)

// CLI defines the command tree.
type CLI struct {
	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the A2A multi-workflow server."`
	Battery BatteryCmd `cmd:"" help:"Send the scripted test battery to a running server."`
	Chat    ChatCmd    `cmd:"" help:"Interactive conversation with a running server."`
	Version VersionCmd `cmd:"" help:"Show version information."`

	Config    string `short:"c" help:"Path to config file (built-in defaults when omitted)." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFormat string `help:"Log format (text or json)." default:"text"`
}

// logger builds the process-wide logger from the global flags.
func (c *CLI) logger() logging.Logger {
	return logging.New(&logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: c.LogFormat,
		Output: os.Stderr,
	})
}

// loadConfig reads the configured file or falls back to the built-in setup.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.Config == "" {
		return config.Default(), nil
	}
	return config.Load(c.Config)
}

// ServeCmd starts the server.
type ServeCmd struct {
	Host string `help:"Listen host (overrides config)."`
	Port int    `help:"Listen port (overrides config)."`
}

func (s *ServeCmd) Run(cli *CLI) error {
	logger := cli.logger()
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if s.Host != "" {
		cfg.Server.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}

	app, err := loom.New(cfg, func(o *loom.Options) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, app.Dispatcher, app.Workflows, cfg.DefaultWorkflow, func(o *server.Options) {
		o.Logger = logger
	})
	return srv.Run(ctx)
}

// BatteryCmd runs the scripted test battery against a running server.
type BatteryCmd struct {
	URL string `help:"Server URL." default:"http://localhost:9999"`
}

func (b *BatteryCmd) Run(cli *CLI) error {
	logger := cli.logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(ctx, b.URL, func(o *client.Options) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}
	return client.RunBattery(ctx, c, os.Stdout)
}

// ChatCmd runs the interactive conversation loop.
type ChatCmd struct {
	URL string `help:"Server URL." default:"http://localhost:9999"`
}

func (ch *ChatCmd) Run(cli *CLI) error {
	logger := cli.logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(ctx, ch.URL, func(o *client.Options) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}
	return client.Interactive(ctx, c, os.Stdin, os.Stdout)
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	fmt.Printf("loom %s\n", version)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("loom"),
		kong.Description("Multi-workflow agent orchestration server over A2A."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
