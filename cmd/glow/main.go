// Command glow is the storefront client: it renders the home, catalog,
// search, product, favorites and profile screens as text.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"glow/internal/client/catalog"
	clientcfg "glow/internal/client/config"
	"glow/internal/client/favorites"
	"glow/internal/client/gateway"
	"glow/internal/client/history"
	"glow/internal/pkg/logger"
)

const usage = `usage: glow [-config path] <command> [args]

commands:
  home                      new, best and recommended products
  catalog [category-id]     newest products, optionally filtered
  search <query>            search by name and record the query
  history [clear]           recent searches
  product <id>              product detail with reviews
  review <id> <1-5> <text>  post a review
  fav [list|add|remove] [id]
  profile                   guest summary
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "glow:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("glow", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", os.Getenv("GLOW_CONFIG"), "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	cfg, err := clientcfg.Load(*configPath)
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(stderr, "glow", cfg.LogLevel)

	a, err := newApp(ctx, cfg, log, stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

// app owns the process-wide stores; screens borrow them.
type app struct {
	cfg     clientcfg.Config
	log     zerolog.Logger
	out     io.Writer
	catalog *catalog.Service
	favs    *favorites.Store
	history *history.Store
	closers []func()
}

func newApp(ctx context.Context, cfg clientcfg.Config, log zerolog.Logger, out io.Writer) (*app, error) {
	gw := gateway.New(gateway.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout})

	a := &app{
		cfg:     cfg,
		log:     log,
		out:     out,
		catalog: catalog.NewService(gw, log),
	}

	storage, err := openHistoryStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if rs, ok := storage.(*history.RedisStorage); ok {
		a.closers = append(a.closers, func() { _ = rs.Close() })
	}
	a.history = history.NewStore(storage, log)
	_ = a.history.Load(ctx)

	a.favs = favorites.NewStore(favorites.NewAPI(gw), cfg.User, log,
		favorites.WithReconcile(cfg.Favorites.Reconcile))
	a.closers = append(a.closers, a.favs.Close)
	if err := a.favs.Start(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func openHistoryStorage(ctx context.Context, cfg clientcfg.Config) (history.Storage, error) {
	if cfg.History.RedisURL != "" {
		return history.OpenRedisStorage(ctx, cfg.History.RedisURL, "glow:"+cfg.User+":")
	}
	return history.NewFileStorage(cfg.History.Dir), nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
