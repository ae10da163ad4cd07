package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fernql/fernql/internal/config"
	"github.com/fernql/fernql/internal/eventbus"
	"github.com/fernql/fernql/internal/metrics"
	"github.com/fernql/fernql/internal/otel"
	"github.com/fernql/fernql/internal/resolver"
	"github.com/fernql/fernql/internal/schema"
	"github.com/fernql/fernql/internal/server"
	"github.com/fernql/fernql/internal/store"
)

const rootUsage = `fernql — batching GraphQL server & tools

USAGE:
  fernql <command> [flags]

COMMANDS:
  serve            Run the HTTP GraphQL server over the in-memory store
  print-schema     Print the schema as SDL
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -config <file>              YAML configuration file
  -server.addr <addr>         HTTP listen address (default: :8080)
  -server.pretty              Pretty-print JSON responses
  -server.timeout <duration>  Per-request timeout, e.g. 10s (default: 10s)
  -server.max-depth <n>       Maximum operation nesting depth (default: 5)
  -server.cors <origins>      Comma-separated allowed CORS origins
  -server.no-graphiql         Disable the in-browser IDE
  -server.no-metrics          Disable the /metrics endpoint
  -otel.endpoint <addr>       OTLP collector endpoint
  -otel.service <name>        OpenTelemetry service name (default: fernql)

Flags override values from the config file.
`

const printSchemaUsage = `print-schema FLAGS:
  -out <file>    Write SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("fernql", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "print-schema":
		return cmdPrintSchema(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "print-schema":
		fmt.Print(printSchemaUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	configPath := fs.String("config", "", "YAML configuration file")
	addr := fs.String("server.addr", "", "HTTP listen address")
	pretty := fs.Bool("server.pretty", false, "Pretty-print JSON responses")
	timeout := fs.Duration("server.timeout", 0, "Per-request timeout")
	maxDepth := fs.Int("server.max-depth", 0, "Maximum operation nesting depth")
	cors := fs.String("server.cors", "", "Comma-separated allowed CORS origins")
	noGraphiQL := fs.Bool("server.no-graphiql", false, "Disable the in-browser IDE")
	noMetrics := fs.Bool("server.no-metrics", false, "Disable the /metrics endpoint")
	otelEndpoint := fs.String("otel.endpoint", "", "OTLP collector endpoint")
	otelService := fs.String("otel.service", "", "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *pretty {
		cfg.Pretty = true
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *cors != "" {
		cfg.CORSOrigins = strings.Split(*cors, ",")
	}
	if *noGraphiQL {
		cfg.GraphiQL = false
	}
	if *noMetrics {
		cfg.Metrics = false
	}
	if *otelEndpoint != "" {
		cfg.Otel.Endpoint = *otelEndpoint
	}
	if *otelService != "" {
		cfg.Otel.Service = *otelService
	}

	eventbus.Use(eventbus.New())
	if cfg.Metrics {
		metrics.Register()
	}
	shutdown, err := otel.Setup(cfg.Otel.Endpoint, cfg.Otel.Service)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	st := store.NewMemory()
	sch := resolver.BuildSchema()

	sopts := []server.Option{
		server.WithTimeout(cfg.Timeout),
		server.WithMaxDepth(cfg.MaxDepth),
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
		server.WithGraphiQL(cfg.GraphiQL),
	}
	if cfg.Pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if len(cfg.CORSOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(cfg.CORSOrigins...))
	}
	h, err := server.New(st, sch, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)
	if cfg.Metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	log.Printf("GraphQL server listening on %s", cfg.Addr)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

func cmdPrintSchema(args []string) error {
	fs := flag.NewFlagSet("print-schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	outFile := fs.String("out", "", "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printSchemaUsage)
		return err
	}

	sdl := schema.Render(resolver.BuildSchema())
	if *outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(*outFile, []byte(sdl), 0644)
}
