package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockd/stockd/internal/config"
	productfake "github.com/stockd/stockd/products/repofake"
	"github.com/stockd/stockd/products/repopgx"
	"github.com/stockd/stockd/server"
	"github.com/stockd/stockd/token"
	"github.com/stockd/stockd/token/denylist"
	userfake "github.com/stockd/stockd/users/repofake"
	userpgx "github.com/stockd/stockd/users/repopgx"
)

func main() {
	godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	ctx := context.Background()

	repos, pool, err := newRepos(ctx, c)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	tokens := token.NewManager(c, newDenylist(c))

	srv, err := server.New(c, repos, tokens)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// newRepos picks pgx-backed repositories when a database URL is configured
// and falls back to in-memory ones otherwise.
func newRepos(ctx context.Context, c config.Config) (server.Repos, *pgxpool.Pool, error) {
	dbURL := c.GetDatabaseURL()
	if dbURL == "" {
		log.Info().Msg("No DATABASE_URL configured, using in-memory repositories")
		return server.Repos{
			Users:    userfake.NewFakeUserRepo(),
			Products: productfake.NewFakeProductRepo(),
		}, nil, nil
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return server.Repos{}, nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return server.Repos{}, nil, fmt.Errorf("database ping: %w", err)
	}
	log.Info().Msg("Connected to postgres")
	return server.Repos{
		Users:    userpgx.NewUserRepo(pool),
		Products: repopgx.NewProductRepo(pool),
	}, pool, nil
}

// newDenylist picks a redis-backed revocation store when REDIS_ADDR is
// configured and an in-memory one otherwise.
func newDenylist(c config.Config) denylist.Store {
	addr := c.GetRedisAddr()
	if addr == "" {
		log.Info().Msg("No REDIS_ADDR configured, using in-memory token denylist")
		return denylist.NewInMemory()
	}
	log.Info().Str("addr", addr).Msg("Using redis token denylist")
	return denylist.NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
