package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	version "github.com/mutablelogic/go-toolset/pkg/version"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// HTTP server and client
	HTTP struct {
		Addr    string        `name:"addr" env:"TOOLSET_ADDR" default:"localhost:8084" help:"Server listen address, or address of the server for client commands"`
		Prefix  string        `name:"prefix" default:"/api" help:"Path prefix for the API"`
		Origin  string        `name:"origin" default:"" help:"Cross-origin protection (CSRF) origin. If empty, same-origin requests only; set to '*' to allow all origins"`
		Timeout time.Duration `name:"timeout" default:"60s" help:"Timeout for outbound requests"`
	} `embed:"" prefix:"http."`

	// Entity on whose behalf requests are made
	Entity string `name:"entity" env:"TOOLSET_ENTITY" help:"Entity identifier"`

	// Private fields
	ctx      context.Context
	logger   *zap.Logger
	execName string
}

type CLI struct {
	Globals
	ServerCommands
	ClientCommands
	VersionCommands
}

type VersionCommands struct {
	Version VersionCmd `cmd:"" name:"version" help:"Print version information" group:"MISC"`
}

type VersionCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Connect users to apps and run model-driven tasks with their tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Create a logger
	logger, err := newLogger(cli.Debug, cli.Verbose)
	if err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
	defer func() { _ = logger.Sync() }()
	cli.Globals.logger = logger.With(zap.String("version", version.Version()))

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCmd) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// newLogger returns a console logger when debugging, and a JSON logger
// otherwise
func newLogger(debug, verbose bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}
