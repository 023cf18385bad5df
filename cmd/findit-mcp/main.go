// findit-mcp is an MCP server exposing web search and URL content
// extraction tools over stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/KSDeshappriya/findit-mcp/pkg/extract"
	"github.com/KSDeshappriya/findit-mcp/pkg/search"
	"github.com/KSDeshappriya/findit-mcp/pkg/tools"
)

// Filled at build time with the -X linker flag.
var (
	Version = "dev"
)

// fileConfig is the optional yaml config file layout. Environment variables
// fill anything the file leaves empty.
type fileConfig struct {
	Search  search.Config  `yaml:"search"`
	Extract extract.Config `yaml:"extract"`
}

func main() {
	configPath := flag.String("config", "", "path to optional yaml config file")
	flag.Parse()

	// Matches the original deployment style where credentials live in .env.
	_ = godotenv.Load()

	log := newLogger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	searchCfg := search.ApplyEnvDefaults(&cfg.Search)
	extractCfg := extract.ApplyEnvDefaults(&cfg.Extract)

	if searchCfg.APIKey == "" || searchCfg.EngineID == "" {
		log.Warn().Msg("GOOGLE_API_KEY/GOOGLE_CSE_ID not set; web_search calls will fail until they are")
	}

	extractor := extract.NewService(extractCfg, log)
	searcher := search.NewService(searchCfg, extractor, log)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "findit",
		Title:   "FindIt Web Search & Extraction",
		Version: Version,
	}, nil)
	tools.NewHandlers(searcher, extractor, log).Register(server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("version", Version).Msg("Starting findit MCP server on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
	log.Info().Msg("Server stopped")
}

// newLogger builds a console logger on stderr. Stdout belongs to the MCP
// transport and must stay clean.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("FINDIT_LOG_LEVEL")); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
