// Package cli implements the vault command line client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"docvault/internal/client"
	"docvault/internal/session"
)

var (
	// ErrUsage is returned after usage help has been printed.
	ErrUsage = errors.New("usage")

	errNotLoggedIn = errors.New("not logged in, run: vault login")
	errInvalidForm = errors.New("upload form has errors")
)

// Config selects the server and where the session is kept.
type Config struct {
	Server    string
	Home      string
	RedisAddr string
}

// LoadConfig reads VAULT_SERVER, VAULT_HOME and VAULT_REDIS_ADDR.
func LoadConfig() Config {
	home := os.Getenv("VAULT_HOME")
	if home == "" {
		if dir, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(dir, ".docvault")
		} else {
			home = ".docvault"
		}
	}
	server := os.Getenv("VAULT_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	return Config{Server: server, Home: home, RedisAddr: os.Getenv("VAULT_REDIS_ADDR")}
}

type App struct {
	client *client.Client
	store  *session.Store
	in     *bufio.Reader
	out    io.Writer
	now    func() time.Time
	closer func() error
}

// NewApp wires the HTTP client to a session store persisted under cfg.Home,
// or in Redis when cfg.RedisAddr is set.
func NewApp(cfg Config, in io.Reader, out io.Writer, log zerolog.Logger) *App {
	c := client.New(cfg.Server)

	var (
		p      session.Persister = session.NewFilePersister(cfg.Home)
		closer                   = func() error { return nil }
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		p = session.NewRedisPersister(rdb, 0)
		closer = rdb.Close
	}

	return &App{
		client: c,
		store:  session.New(c, p, log),
		in:     bufio.NewReader(in),
		out:    out,
		now:    time.Now,
		closer: closer,
	}
}

type command struct {
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"login":      {"login [-email e] [-password p]", (*App).login},
	"register":   {"register [-name n] [-email e] [-password p]", (*App).register},
	"logout":     {"logout", (*App).logout},
	"whoami":     {"whoami", (*App).whoami},
	"list":       {"list [-q term] [-category c]", (*App).list},
	"upload":     {"upload -title t -category c <file>", (*App).upload},
	"delete":     {"delete <id>", (*App).delete},
	"download":   {"download <id>", (*App).download},
	"categories": {"categories", (*App).categories},
}

var order = []string{"login", "register", "logout", "whoami", "list", "upload", "delete", "download", "categories"}

// Run restores the session and executes one subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.closer()

	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	if err := a.store.Restore(ctx); err != nil {
		return err
	}
	if rec, ok := a.store.Current(); ok {
		a.client.SetToken(rec.Token)
	}

	err := cmd.run(a, ctx, args[1:])
	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(a.out, "usage: vault "+cmd.usage)
	}
	return err
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: vault <command> [flags]")
	fmt.Fprintln(a.out)
	for _, name := range order {
		fmt.Fprintln(a.out, "  "+commands[name].usage)
	}
}

func (a *App) requireSession() error {
	if _, ok := a.store.Current(); !ok {
		return errNotLoggedIn
	}
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
