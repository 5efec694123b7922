package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/idilsaglam/taskboard/internal/client"
	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/server"
	"github.com/idilsaglam/taskboard/internal/service"
	"github.com/idilsaglam/taskboard/internal/store"
	"github.com/idilsaglam/taskboard/internal/store/memstore"
	"github.com/idilsaglam/taskboard/internal/store/sqlstore"
	"github.com/idilsaglam/taskboard/internal/tui"
	"github.com/idilsaglam/taskboard/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	StoreKind string // "sqlite" or "mem"
	DBPath    string
	Addr      string // listen address for serve
	ServerURL string // non-empty: talk to a running server instead of a local store
	Theme     string
	Demo      bool // seeded in-memory store with simulated latency
	Verbose   bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	ui.SetTheme(opt.Theme)
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "serve":
		return doServe(opt)

	case "ui":
		return doUI(opt)

	case "ls":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: taskboard add <title...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: taskboard done <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("done: not a number: " + a[0])
			return 2
		}
		return doToggle(opt, n)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: taskboard rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(opt, n)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`taskboard - a tiny task list

Usage:
  taskboard [flags] <subcommand> [args]

Subcommands:
  serve              Run the HTTP API server
  ui                 Open the interactive task UI
  ls                 List tasks
  add <title...>     Add a new task (title can be multiple words)
  done <index>       Toggle completion for task at 1-based index
  rm <index>         Remove task at 1-based index

Flags:
  -store sqlite|mem  Storage backend (default sqlite)
  -db <path>         SQLite file path (default db/tasks.db)
  -addr <addr>       Listen address for serve (default :8080)
  -server <url>      Talk to a running server instead of a local store
  -theme <name>      classic, neon, or mono
  -demo              Seeded in-memory store with simulated latency (ui)

Examples:
  taskboard serve
  taskboard -server http://localhost:8080 ui
  taskboard add "Buy milk"
  taskboard done 2
`)
}

// -------------- wiring ----------------

func (o Options) logger() *slog.Logger {
	// One-shot and TUI commands keep the terminal clean unless asked.
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func openStore(opt Options) (store.Store, error) {
	if opt.Demo {
		return memstore.NewSeeded(), nil
	}
	if opt.StoreKind == "mem" {
		return memstore.New(), nil
	}
	return sqlstore.Open(opt.DBPath)
}

// buildAPI returns the task API (local service or remote client) and a
// cleanup func.
func buildAPI(opt Options) (service.API, func() error, error) {
	if opt.ServerURL != "" {
		return client.New(opt.ServerURL, opt.logger()), func() error { return nil }, nil
	}
	st, err := openStore(opt)
	if err != nil {
		return nil, nil, err
	}
	svcOpts := []service.Option{service.WithLogger(opt.logger())}
	if opt.Demo {
		svcOpts = append(svcOpts, service.WithLatency(200*time.Millisecond, 300*time.Millisecond))
	}
	return service.New(st, svcOpts...), st.Close, nil
}

// -------------- subcommand impls ----------------

func doServe(opt Options) int {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	st, err := openStore(opt)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := service.New(st, service.WithLogger(log))
	if err := server.Run(ctx, opt.Addr, svc, log); err != nil {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	return 0
}

func doUI(opt Options) int {
	api, closeFn, err := buildAPI(opt)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer closeFn()

	if err := tui.Run(api); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func doList(opt Options) int {
	api, closeFn, err := buildAPI(opt)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer closeFn()

	tasks, err := api.ListTasks(context.Background())
	if err != nil {
		ui.Fail("list: " + err.Error())
		return 1
	}

	completed, _ := model.Stats(tasks)
	var lines []string
	lines = append(lines, ui.Header(completed, len(tasks)))
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(completed, len(tasks), 28)))
	lines = append(lines, "")
	if len(tasks) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "no tasks"))
	} else {
		for i, t := range tasks {
			lines = append(lines, ui.TaskLine(i, t))
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `taskboard add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(opt Options, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	api, closeFn, err := buildAPI(opt)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer closeFn()

	task, err := api.CreateTask(context.Background(), title)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK("added " + task.ID)
	return 0
}

func doToggle(opt Options, userIndex int) int {
	api, closeFn, err := buildAPI(opt)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer closeFn()

	ctx := context.Background()
	task, code := taskAtIndex(ctx, api, userIndex)
	if code != 0 {
		return code
	}
	updated, err := api.ToggleTask(ctx, task.ID)
	if err != nil {
		ui.Fail("done: " + err.Error())
		return 1
	}
	if updated == nil {
		ui.Fail("done: task not found (already removed?)")
		return 1
	}
	ui.OK("toggled")
	return 0
}

func doRemove(opt Options, userIndex int) int {
	api, closeFn, err := buildAPI(opt)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer closeFn()

	ctx := context.Background()
	task, code := taskAtIndex(ctx, api, userIndex)
	if code != 0 {
		return code
	}
	removed, err := api.DeleteTask(ctx, task.ID)
	if err != nil {
		ui.Fail("rm: " + err.Error())
		return 1
	}
	if !removed {
		ui.Fail("rm: task not found (already removed?)")
		return 1
	}
	ui.OK("removed")
	return 0
}

// taskAtIndex resolves a 1-based listing index to a task. Returns a
// non-zero exit code on failure.
func taskAtIndex(ctx context.Context, api service.API, userIndex int) (model.Task, int) {
	tasks, err := api.ListTasks(ctx)
	if err != nil {
		ui.Fail("list: " + err.Error())
		return model.Task{}, 1
	}
	if userIndex < 1 || userIndex > len(tasks) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(tasks), userIndex))
		fmt.Fprintln(os.Stderr, ui.C("\033[90m", "Hint: run `taskboard ls` to see valid indexes"))
		return model.Task{}, 2
	}
	return tasks[userIndex-1], 0
}
