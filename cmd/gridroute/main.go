package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"gridroute/config"
	"gridroute/pathfinding"
	"gridroute/render"
	"gridroute/scene"
	"gridroute/server"
)

var errUsage = errors.New("usage")

type cliOptions struct {
	format     string
	outputFile string
	tui        bool
	serve      string
	schema     bool
	configFile string
	scale      float64
	limit      int
	workers    int
	cacheSize  int
	ascii      bool
	verbose    bool
	filename   string
}

func main() {
	var opts cliOptions
	help := false

	flag.StringVar(&opts.format, "format", "json", "Output format: json or ascii")
	flag.StringVar(&opts.outputFile, "o", "", "Output file (default: stdout)")
	flag.BoolVar(&opts.tui, "tui", false, "Show the routed scene in the terminal")
	flag.StringVar(&opts.serve, "serve", "", "Serve route requests over a WebSocket on this address")
	flag.BoolVar(&opts.schema, "schema", false, "Print the JSON schema of scene files")
	flag.StringVar(&opts.configFile, "config", "", "Tuning file (JSON) for scenes without their own tuning")
	flag.Float64Var(&opts.scale, "scale", render.DefaultScale, "Scene units per terminal cell (ascii and tui)")
	flag.IntVar(&opts.limit, "limit", -1, "Override the search iteration limit")
	flag.IntVar(&opts.workers, "workers", 0, "Connectors routed at once (default: number of CPUs)")
	flag.IntVar(&opts.cacheSize, "cache", 1024, "Path cache size of the server")
	flag.BoolVar(&opts.ascii, "ascii", false, "Draw with plain ASCII instead of box-drawing characters")
	flag.BoolVar(&opts.verbose, "v", false, "Log routing statistics to stderr")
	flag.BoolVar(&help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] scene.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routes orthogonal connectors between the shapes of a scene.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s scene.json                  # Routes as JSON on stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format ascii scene.json    # Draw the scene\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tui -scale 5 scene.json    # Browse the scene in the terminal\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -serve :8080                # WebSocket endpoint at /ws\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -schema > scene.schema.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s  override the iteration limit\n", config.EnvLimit)
		fmt.Fprintf(os.Stderr, "  %s  force ascii or unicode drawing\n", render.EnvTerminalMode)
	}

	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}
	if args := flag.Args(); len(args) > 0 {
		opts.filename = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			flag.Usage()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts cliOptions, stdout, stderr io.Writer) error {
	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "gridroute: ", log.LstdFlags)
	}

	if opts.schema {
		data, err := scene.SchemaJSON()
		if err != nil {
			return err
		}
		return writeOutput(opts.outputFile, stdout, append(data, '\n'))
	}

	tuning, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("loading tuning: %w", err)
	}
	if opts.limit >= 0 {
		tuning.Limit = opts.limit
	}

	if opts.serve != "" {
		return server.ListenAndServe(ctx, server.Config{
			Addr:      opts.serve,
			Logger:    log.New(stderr, "gridroute: ", log.LstdFlags),
			CacheSize: opts.cacheSize,
			Options:   tuning.Options(),
		})
	}

	if opts.filename == "" {
		return fmt.Errorf("%w: please provide a scene file", errUsage)
	}
	format := strings.ToLower(opts.format)
	if format != "json" && format != "ascii" {
		return fmt.Errorf("%w: unknown format %q (available: json, ascii)", errUsage, opts.format)
	}

	s, err := scene.Load(opts.filename)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	if opts.limit >= 0 && s.Tuning != nil {
		s.Tuning.Limit = opts.limit
	}

	router := scene.NewRouter(tuning)
	router.Workers = opts.workers
	routes, err := router.RouteAll(ctx, s)
	if err != nil {
		return fmt.Errorf("routing: %w", err)
	}
	found := logRoutes(logger, routes)

	drawOpts := render.DefaultOptions()
	drawOpts.Scale = opts.scale
	drawOpts.Charset = render.DetectCharset()
	if opts.ascii {
		drawOpts.Charset = render.ASCII
	}

	if opts.tui {
		status := fmt.Sprintf(" %s: %d/%d connectors routed  q: quit  arrows: scroll", opts.filename, found, len(routes))
		return render.Show(s, routes, drawOpts, status)
	}

	var data []byte
	switch format {
	case "ascii":
		var sb strings.Builder
		if err := render.WriteASCII(&sb, s, routes, drawOpts); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
		data = []byte(sb.String())
	default:
		if data, err = json.MarshalIndent(routes, "", "  "); err != nil {
			return fmt.Errorf("encoding routes: %w", err)
		}
		data = append(data, '\n')
	}

	if err := writeOutput(opts.outputFile, stdout, data); err != nil {
		return err
	}
	if opts.outputFile != "" {
		fmt.Fprintf(stderr, "Successfully exported to %s\n", opts.outputFile)
	}
	return nil
}

// logRoutes logs one line per route and returns how many reached their goal.
func logRoutes(logger *log.Logger, routes []scene.Route) int {
	found := 0
	for _, r := range routes {
		if r.Found {
			found++
		}
		logger.Printf("connector %s: length=%.1f %s", r.Connector.Name(),
			pathfinding.PolylineLength(r.Points),
			pathfinding.PathToString(pathfinding.Result{Points: r.Points, Found: r.Found, Expanded: r.Expanded}))
	}
	logger.Printf("%d of %d connectors reached their target", found, len(routes))
	return found
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
