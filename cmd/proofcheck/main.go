package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mzaleski/proofcheck"
	"github.com/mzaleski/proofcheck/gemini"
	"github.com/mzaleski/proofcheck/goquery"
	"github.com/mzaleski/proofcheck/htmltomarkdown"
	pchttp "github.com/mzaleski/proofcheck/http"
	pcslog "github.com/mzaleski/proofcheck/slog"
	"github.com/mzaleski/proofcheck/sqlite"
	"github.com/mzaleski/proofcheck/trafilatura"
	"github.com/mzaleski/proofcheck/verify"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service exposed for end-to-end testing.
	ReferenceService proofcheck.ReferenceService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("proofcheck"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'proofcheck --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PROOFCHECK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ReferenceService = sqlite.NewReferenceService(m.DB)
	deps.DB = m.DB
	deps.References = m.ReferenceService

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	fetcher := pcslog.NewLoggingFetcher(pchttp.NewFetcher(), logger)
	defer fetcher.Close()
	deps.Fetcher = fetcher

	if cmd == "add" {
		deps.Extractor = trafilatura.NewExtractor()
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cmd == "verify" {
		semantic, err := newSemanticComparator(ctx, cli.Verify.Mock, stderr)
		if err != nil {
			return err
		}

		deps.Verifier = &verify.Verifier{
			Fetcher:     deps.Fetcher,
			Extractor:   goquery.NewEmailExtractor(),
			Comparator:  proofcheck.NewComparator(),
			Semantic:    pcslog.NewLoggingSemanticComparator(semantic, logger),
			RateLimiter: verify.NewDomainLimiter(cli.Verify.RPS),
			Concurrency: cli.Verify.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// newSemanticComparator wires the Gemini comparator, falling back to mock
// mode when no API key is configured.
func newSemanticComparator(ctx context.Context, mock bool, stderr io.Writer) (proofcheck.SemanticComparator, error) {
	if mock {
		return gemini.NewComparator(nil, gemini.WithMockMode()), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; semantic comparison will run in mock mode. Get an API key at https://aistudio.google.com/apikey")
		return gemini.NewComparator(nil, gemini.WithMockMode()), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewComparator(client), nil
}

func defaultDBPath() string {
	if path := os.Getenv("PROOFCHECK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "proofcheck.db"
	}
	dir := filepath.Join(home, ".proofcheck")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "proofcheck.db")
}
