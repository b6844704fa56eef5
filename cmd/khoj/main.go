// Package main is the Khoj CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openbasket/khoj/internal/catalog"
	"github.com/openbasket/khoj/internal/cli"
	"github.com/openbasket/khoj/internal/config"
	"github.com/openbasket/khoj/internal/models"
	"github.com/openbasket/khoj/internal/search"
	"github.com/openbasket/khoj/internal/server"
	"github.com/openbasket/khoj/internal/watcher"
	"github.com/openbasket/khoj/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/khoj/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "add":
		runAdd()
	case "get":
		runGet()
	case "meta":
		runMeta()
	case "seed":
		runSeed()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("khoj version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openStore opens the catalog store named by the config driver.
func openStore(cfg *config.Config) (catalog.Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return catalog.NewMemoryStore(), nil
	case "sqlite", "":
		store, err := catalog.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (seed reloads, ranking detail, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open catalog store", zap.Error(err))
	}
	defer store.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Storage.SeedPath != "" {
		n, err := catalog.ReloadSeed(watchCtx, store, cfg.Storage.SeedPath)
		if err != nil {
			logger.Fatal("Failed to import seed", zap.String("path", cfg.Storage.SeedPath), zap.Error(err))
		}
		logger.Info("seed imported", zap.String("path", cfg.Storage.SeedPath), zap.Int("products", n))

		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(cfg.Storage.SeedPath, func(path string) {
			n, err := catalog.ReloadSeed(context.Background(), store, path)
			if err != nil {
				logger.Warn("seed reload failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("seed reloaded", zap.String("path", path), zap.Int("products", n))
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start seed watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	engine := search.NewEngine(store, &cfg.Ranking, logger)
	srv := server.NewServer(engine, store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting (e.g. "sasta iphone" vs sasta iphone).
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "khoj search \"query\"
// -limit 5" would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: khoj search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Queries rank products by text relevance plus business signals (rating, stock,
discount, sales). Intent keywords steer the ranking:
  • "sasta", "cheap", "budget"  favour lower prices
  • "best", "accha", "top"      favour higher ratings
An empty query returns the whole catalog ranked by popularity.

Examples:
  khoj search sasta iphone
  khoj search "basmati rice"
  khoj search --limit 5 best chai
  khoj search --output json masala
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8000", "server URL (empty = use direct storage when server is not running)")
	limit := fs.Int("limit", 50, "number of results")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, queryStr, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	engine := search.NewEngine(store, &cfg.Ranking, logger)
	query := &models.SearchQuery{Query: queryStr, Limit: *limit}
	query.Normalize(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	response, err := engine.Search(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, query string, limit int) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	resp, err := http.Get(serverURL + "/api/v1/search/product?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	file := fs.String("file", "", "read product JSON from file instead of stdin")
	_ = fs.Parse(os.Args[2:])

	var data []byte
	var err error
	if *file != "" {
		data, err = os.ReadFile(*file)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read product JSON: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Post(*serverURL+"/api/v1/product", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		fmt.Fprintf(os.Stderr, "Add failed (%d): %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
	fmt.Println(strings.TrimSpace(string(body)))
}

func runGet() {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: khoj get [flags] <product-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	resp, err := http.Get(*serverURL + "/api/v1/product/" + url.PathEscape(id))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Get failed (%d): %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}

func runMeta() {
	fs := flag.NewFlagSet("meta", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 2 {
		fmt.Println("Usage: khoj meta [flags] <product-id> <key=value> [key=value ...]")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid product id %q\n", fs.Arg(0))
		os.Exit(1)
	}
	meta := map[string]interface{}{}
	for _, pair := range fs.Args()[1:] {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			fmt.Fprintf(os.Stderr, "Invalid key=value pair %q\n", pair)
			os.Exit(1)
		}
		meta[k] = v
	}

	body, _ := json.Marshal(models.MetadataUpdate{ProductID: id, Metadata: meta})
	req, _ := http.NewRequest(http.MethodPut, *serverURL+"/api/v1/product/meta-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Update failed (%d): %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}
	fmt.Println(strings.TrimSpace(string(respBody)))
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	replace := fs.Bool("replace", false, "clear the catalog before importing")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: khoj seed [flags] <seed-file.json>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to open catalog store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	var n int
	if *replace {
		n, err = catalog.ReloadSeed(ctx, store, path)
	} else {
		n, err = catalog.ImportSeed(ctx, store, path)
	}
	if err != nil {
		fmt.Printf("Seed import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d product(s) from %s\n", n, path)
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Products int64                 `json:"products"`
	Config   *statusConfigResponse `json:"config,omitempty"`
}

type statusConfigResponse struct {
	StorageDriver string `json:"storage_driver,omitempty"`
	DefaultLimit  int    `json:"default_limit,omitempty"`
	MaxLimit      int    `json:"max_limit,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8000", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open catalog store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		count, err := store.Count(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count products failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Products: count,
			Config: &statusConfigResponse{
				StorageDriver: cfg.Storage.Driver,
				DefaultLimit:  cfg.Search.DefaultLimit,
				MaxLimit:      cfg.Search.MaxLimit,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("products:        %d   # count of catalog products\n", status.Products)
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			fmt.Printf("storage_driver:  %s\n", status.Config.StorageDriver)
			fmt.Printf("default_limit:   %d\n", status.Config.DefaultLimit)
			fmt.Printf("max_limit:       %d\n", status.Config.MaxLimit)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`khoj - Product catalog search and ranking service

Usage:
  khoj server [flags]             Start the HTTP server
  khoj search [flags] <query>     Search products
  khoj add [flags]                Add a product (JSON on stdin or --file)
  khoj get [flags] <id>           Fetch a product by ID
  khoj meta [flags] <id> <k=v>..  Merge metadata into a product
  khoj seed [flags] <file>        Import a JSON seed file into the catalog
  khoj status [flags]             Show catalog/server status
  khoj version                    Show version
  khoj help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/khoj/config.yaml)
  --debug            Enable debug logging (seed reloads, ranking detail, etc.)

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8000). Use empty (--server "") to use direct storage when server is not running.
  --limit int        Number of results (default: 50)
  --output string    Output format: text or json (default: text)

Seed Flags:
  --config string    Config file path
  --replace          Clear the catalog before importing

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8000). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Examples:
  khoj server
  khoj search sasta iphone
  khoj search --output json "basmati rice"
  echo '{"title": "Chai", "price": 120}' | khoj add
  khoj get 42
  khoj meta 42 brand=Tata origin=Assam
  khoj seed --replace products.json
  khoj status`)
}
