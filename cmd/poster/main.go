package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pauljones0/thehub-deal-poster/internal/brand"
	"github.com/pauljones0/thehub-deal-poster/internal/caption"
	"github.com/pauljones0/thehub-deal-poster/internal/config"
	"github.com/pauljones0/thehub-deal-poster/internal/instagram"
	"github.com/pauljones0/thehub-deal-poster/internal/logging"
	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/publisher"
	"github.com/pauljones0/thehub-deal-poster/internal/render"
	"github.com/pauljones0/thehub-deal-poster/internal/scraper"
	"github.com/pauljones0/thehub-deal-poster/internal/session"
	"github.com/pauljones0/thehub-deal-poster/internal/status"
	"github.com/pauljones0/thehub-deal-poster/internal/storage"
	"github.com/pauljones0/thehub-deal-poster/internal/validator"
)

type options struct {
	deal      models.Deal
	story     bool
	dryRun    bool
	testLogin bool
	enrich    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Critical error loading configuration: %v\n", err)
		return 1
	}

	_, logCloser, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(stderr, "Critical error setting up logging: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := status.New(stdout)

	store, closeStore, err := openStateStore(ctx, cfg)
	if err != nil {
		slog.Error("Critical error initializing session store", "backend", cfg.SessionBackend, "error", err)
		out.Fail("Session store unavailable: %v", err)
		return 1
	}
	defer closeStore()

	newClient := func() (session.Client, error) {
		c, err := instagram.New(cfg.InstagramBaseURL, cfg.HTTPTimeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	mgr := session.NewManager(cfg.CredentialsPath, store, newClient, out)

	if opts.testLogin {
		return testLogin(ctx, mgr, out)
	}

	deal := opts.deal
	if opts.enrich {
		enriched, err := scraper.New(cfg).Enrich(ctx, deal)
		if err != nil {
			slog.Warn("Deal enrichment failed", "url", deal.URL, "error", err)
			out.Warn("Could not enrich deal from URL: %v", err)
		} else {
			deal = enriched
		}
	}
	if err := validator.New().ValidateDeal(deal); err != nil {
		out.Fail("Invalid deal: %v", err)
		return 1
	}

	theme := brand.Load(cfg.BrandConfigPath)
	sessionFn := func(ctx context.Context) (publisher.Uploader, error) {
		c, err := mgr.GetSession(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	pub := publisher.New(render.New(theme, cfg.FontPath), caption.New(theme), sessionFn, out, cfg.AssetTempDir, theme.PostURLPrefix)

	var result models.PostResult
	if opts.story {
		result, err = pub.PostStory(ctx, deal, opts.dryRun)
	} else {
		result, err = pub.PostDeal(ctx, deal, opts.dryRun)
	}

	if printErr := printResult(stdout, result); printErr != nil {
		slog.Error("Failed to print result", "error", printErr)
	}
	if err != nil {
		slog.Error("Posting failed", "title", deal.DisplayTitle(), "story", opts.story, "fatal", session.IsFatal(err), "error", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("poster", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.deal.Title, "title", "", "Deal title")
	fs.StringVar(&opts.deal.Price, "price", "", "Current price")
	fs.StringVar(&opts.deal.OriginalPrice, "original-price", "", "Original price")
	fs.StringVar(&opts.deal.Discount, "discount", "", "Discount amount")
	fs.StringVar(&opts.deal.Category, "category", models.DefaultCategory, "Category: watches, sneakers, cars")
	fs.StringVar(&opts.deal.Source, "source", "", "Deal source (e.g., Amazon, Chrono24)")
	fs.StringVar(&opts.deal.URL, "url", "", "Deal URL")
	fs.BoolVar(&opts.story, "story", false, "Post as story instead")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Don't actually post")
	fs.BoolVar(&opts.testLogin, "test-login", false, "Just test login")
	fs.BoolVar(&opts.enrich, "enrich", false, "Fill missing title, price and source from --url")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !opts.testLogin && opts.deal.Title == "" && !(opts.enrich && opts.deal.URL != "") {
		fs.Usage()
		return options{}, fmt.Errorf("--title is required for posting")
	}
	return opts, nil
}

func testLogin(ctx context.Context, mgr *session.Manager, out *status.Printer) int {
	client, err := mgr.GetSession(ctx)
	if err != nil {
		slog.Error("Login test failed", "error", err)
		return 1
	}
	info, err := client.AccountInfo(ctx)
	if err != nil {
		slog.Error("Failed to fetch account info", "error", err)
		out.Fail("Could not fetch account info: %v", err)
		return 1
	}

	out.OK("Logged in as @%s", info.Username)
	out.Detail("Followers: %d", info.FollowerCount)
	out.Detail("Following: %d", info.FollowingCount)
	return 0
}

// openStateStore selects the session backend from config. The returned
// close func is always safe to call.
func openStateStore(ctx context.Context, cfg *config.Config) (session.StateStore, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionBackendFirestore:
		fsStore, err := storage.New(ctx, cfg.ProjectID, cfg.FirestoreSessionDoc, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, func() {}, err
		}
		return fsStore, func() {
			if err := fsStore.Close(); err != nil {
				slog.Warn("Failed to close Firestore client", "error", err)
			}
		}, nil
	default:
		return session.NewFileStore(cfg.SessionPath), func() {}, nil
	}
}

func printResult(w io.Writer, result models.PostResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
