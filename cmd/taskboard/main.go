package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/taskboard/internal/cli"
	"github.com/idilsaglam/taskboard/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	storeKind := flag.String("store", "sqlite", "storage backend: sqlite or mem")
	dbPath := flag.String("db", "db/tasks.db", "SQLite database file")
	addr := flag.String("addr", defaultAddr(), "listen address for serve")
	serverURL := flag.String("server", "", "base URL of a running server (remote mode)")
	theme := flag.String("theme", "classic", "output theme: classic, neon, mono")
	demo := flag.Bool("demo", false, "seeded in-memory store with simulated latency")
	verbose := flag.Bool("v", false, "log diagnostics to stderr")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	ui.SetColorForcing(false, *noColor)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		Addr:      *addr,
		ServerURL: *serverURL,
		Theme:     *theme,
		Demo:      *demo,
		Verbose:   *verbose,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

func defaultAddr() string {
	if addr := os.Getenv("TASKBOARD_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
