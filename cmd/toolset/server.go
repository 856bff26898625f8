package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	openapihttphandler "github.com/mutablelogic/go-server/pkg/openapi/httphandler"
	cache "github.com/mutablelogic/go-toolset/pkg/cache"
	composio "github.com/mutablelogic/go-toolset/pkg/composio"
	httphandler "github.com/mutablelogic/go-toolset/pkg/httphandler"
	manager "github.com/mutablelogic/go-toolset/pkg/manager"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	openai "github.com/mutablelogic/go-toolset/pkg/provider/openai"
	telemetry "github.com/mutablelogic/go-toolset/pkg/telemetry"
	toolkit "github.com/mutablelogic/go-toolset/pkg/toolkit"
	version "github.com/mutablelogic/go-toolset/pkg/version"
	zap "go.uber.org/zap"
)

type ServerCommands struct {
	// Commands
	RunServer RunServer `cmd:"" name:"run" help:"Run server." group:"SERVER"`
}

type RunServer struct {
	// Platform and model API keys
	OpenAIAPIKey     string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIEndpoint   string `name:"openai-endpoint" env:"OPENAI_ENDPOINT" help:"OpenAI API endpoint, for compatible servers"`
	ComposioAPIKey   string `name:"composio-api-key" env:"COMPOSIO_API_KEY" required:"" help:"Composio API key"`
	ComposioEndpoint string `name:"composio-endpoint" env:"COMPOSIO_ENDPOINT" help:"Composio API endpoint"`

	// Tasks and model
	Tasks string `name:"tasks" type:"existingfile" help:"YAML file of additional tasks"`
	Model string `name:"model" env:"TOOLSET_MODEL" default:"gpt-4o" help:"Model used to run tasks"`

	// Tool calls
	Concurrency int `name:"concurrency" default:"4" help:"Maximum number of tool calls run in parallel"`

	// Connection cache
	Redis struct {
		Addr     string `name:"addr" env:"REDIS_ADDR" help:"Redis address for the connection cache. If empty, connections are cached in memory"`
		Password string `name:"password" env:"REDIS_PASSWORD" help:"Redis password"`
		DB       int    `name:"db" default:"0" help:"Redis database"`
	} `embed:"" prefix:"redis."`
	CacheTTL time.Duration `name:"cache-ttl" default:"5m" help:"How long active connections are cached"`

	// Tracing
	Otel struct {
		Endpoint string  `name:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP/HTTP endpoint for traces. If empty, tracing is disabled"`
		Insecure bool    `name:"insecure" help:"Export traces over plain HTTP"`
		Sample   float64 `name:"sample" default:"1" help:"Ratio of traces sampled"`
	} `embed:"" prefix:"otel."`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunServer) Run(ctx *Globals) error {
	return cmd.WithManager(ctx, func(manager *manager.Manager, collector *metrics.Collector) error {
		// Start the HTTP server and wait for shutdown
		return cmd.Serve(ctx, manager, collector, version.Version())
	})
}

// WithManager creates the clients, cache, toolkit and manager, invokes fn,
// then releases them regardless of whether fn returned an error.
func (cmd *RunServer) WithManager(ctx *Globals, fn func(*manager.Manager, *metrics.Collector) error) error {
	logger := ctx.logger.With(zap.String("component", "server"))

	// Tracing
	provider, err := telemetry.New(ctx.ctx, telemetry.Config{
		Endpoint: cmd.Otel.Endpoint,
		Insecure: cmd.Otel.Insecure,
		Sample:   cmd.Otel.Sample,
		Name:     ctx.execName,
		Version:  version.Version(),
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(ctx.ctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()
	tracer := provider.Tracer(ctx.execName)

	// Metrics
	collector := metrics.NewCollector(metrics.DefaultNamespace, logger)

	// Make client opts
	clientOpts := []client.ClientOpt{}
	if ctx.Debug {
		clientOpts = append(clientOpts, client.OptTrace(os.Stderr, ctx.Verbose))
	}
	if provider.Enabled() {
		clientOpts = append(clientOpts, client.OptTracer(tracer))
	}
	if ctx.HTTP.Timeout != 0 {
		clientOpts = append(clientOpts, client.OptTimeout(ctx.HTTP.Timeout))
	}

	// Composio client
	platformOpts := clientOpts
	if cmd.ComposioEndpoint != "" {
		platformOpts = append(platformOpts, client.OptEndpoint(cmd.ComposioEndpoint))
	}
	platform, err := composio.New(cmd.ComposioAPIKey, platformOpts...)
	if err != nil {
		return fmt.Errorf("failed to create Composio client: %w", err)
	}

	// Connection cache
	var connections cache.Cache
	if cmd.Redis.Addr != "" {
		redis, err := cache.NewRedis(ctx.ctx, cache.Config{
			Addr:     cmd.Redis.Addr,
			Password: cmd.Redis.Password,
			DB:       cmd.Redis.DB,
			TTL:      cmd.CacheTTL,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		connections = redis
	} else {
		connections = cache.NewMemory(cmd.CacheTTL)
	}
	defer connections.Close()

	// Toolkit
	toolkit, err := toolkit.New(platform,
		toolkit.WithCache(connections),
		toolkit.WithTracer(tracer),
		toolkit.WithMetrics(collector),
		toolkit.WithConcurrency(cmd.Concurrency),
	)
	if err != nil {
		return err
	}

	// Manager options
	opts := []manager.Opt{
		manager.WithToolkit(toolkit),
		manager.WithLogger(ctx.logger),
		manager.WithTracer(tracer),
		manager.WithMetrics(collector),
		manager.WithDefaultModel(cmd.Model),
	}
	if ctx.Entity != "" {
		opts = append(opts, manager.WithDefaultEntity(ctx.Entity))
	}

	// OpenAI client, tasks cannot be executed without one
	if cmd.OpenAIAPIKey != "" || cmd.OpenAIEndpoint != "" {
		generatorOpts := clientOpts
		if cmd.OpenAIEndpoint != "" {
			generatorOpts = append(generatorOpts, client.OptEndpoint(cmd.OpenAIEndpoint))
		}
		generator, err := openai.New(cmd.OpenAIAPIKey, generatorOpts...)
		if err != nil {
			return fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		opts = append(opts, manager.WithGenerator(generator))
	} else {
		logger.Warn("no OpenAI API key configured, tasks cannot be executed")
	}

	// Create the manager
	manager, err := manager.NewManager(opts...)
	if err != nil {
		return err
	}

	// Load additional tasks
	if cmd.Tasks != "" {
		r, err := os.Open(cmd.Tasks)
		if err != nil {
			return err
		}
		defer r.Close()
		if err := manager.LoadTasks(r); err != nil {
			return fmt.Errorf("%s: %w", cmd.Tasks, err)
		}
	}

	// Run the server with the manager
	return fn(manager, collector)
}

// Serve creates the httpserver instance, logs the startup banner, and
// blocks until context cancellation (e.g. SIGINT).
func (cmd *RunServer) Serve(ctx *Globals, manager *manager.Manager, collector *metrics.Collector, versionTag string) error {
	logger := ctx.logger.With(zap.String("component", "server"))

	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		var pemData [][]byte
		if cmd.TLS.CertFile != "" {
			certData, err := os.ReadFile(cmd.TLS.CertFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS certificate: %w", err)
			}
			pemData = append(pemData, certData)
		}
		if cmd.TLS.KeyFile != "" {
			keyData, err := os.ReadFile(cmd.TLS.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS key: %w", err)
			}
			pemData = append(pemData, keyData)
		}
		var err error
		tlsConfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the server
	srv, err := httpserver.New(ctx.HTTP.Addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("httpserver: %w", err)
	}

	// Create the router on the server mux, and register the handlers
	router, err := httprouter.NewRouter(ctx.ctx, srv.Router(), ctx.HTTP.Prefix, ctx.HTTP.Origin, "Toolset Server", versionTag)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	} else if err := httphandler.RegisterHandlers(manager, collector, router); err != nil {
		return fmt.Errorf("register: %w", err)
	} else if err := openapihttphandler.RegisterHandler(router); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}

	// Unmatched requests return a JSON 404
	if err := router.RegisterCatchAll("/", false); err != nil {
		return fmt.Errorf("catchall: %w", err)
	} else if err := router.RegisterCatchAll(ctx.HTTP.Prefix, false); err != nil {
		return fmt.Errorf("catchall: %w", err)
	}

	// Run the server
	logger.Info("started", zap.String("name", ctx.execName), zap.String("addr", ctx.HTTP.Addr), zap.String("prefix", ctx.HTTP.Prefix))
	if err := srv.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	logger.Info("stopped", zap.String("name", ctx.execName))
	return nil
}
