package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/filedash/filedash/internal/adapter/sqlite"
	"github.com/filedash/filedash/internal/auth"
	"github.com/filedash/filedash/internal/config"
	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/domain/event"
	"github.com/filedash/filedash/internal/gateway"
	"github.com/filedash/filedash/internal/logger"
	"github.com/filedash/filedash/internal/port"
	"github.com/filedash/filedash/internal/session"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zapLogger := logger.GetZapLogger()
	zapLogger.Info("starting filedash",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Pick the token source
	var tokens port.TokenSource
	if cfg.Auth.TokenFile != "" {
		tokens = auth.NewFileTokenSource(cfg.Auth.TokenFile)
	} else {
		tokens = auth.NewStaticTokenSource(cfg.Auth.Token)
	}

	// Open the preference store
	prefs, err := sqlite.NewPrefsStore(cfg.Prefs.DBPath, cfg.Prefs.Profile)
	if err != nil {
		zapLogger.Fatal("failed to open preference store", zap.Error(err), zap.String("path", cfg.Prefs.DBPath))
	}
	defer prefs.Close()

	// Create the gateway client
	gw := gateway.NewClient(gateway.Config{
		BaseURL:       cfg.Gateway.BaseURL,
		Timeout:       cfg.Gateway.GetTimeout(),
		SkipTLSVerify: cfg.Gateway.SkipTLSVerify,
	}, tokens)

	// Wire the event dispatcher
	dispatcher := event.NewInMemoryDispatcher()
	dispatcher.Subscribe(event.NewLoggingHandler(zapLogger))
	dispatcher.Subscribe(&consoleNotifier{})

	// Create the session
	sess := session.New(&session.Config{
		DownloadDir: cfg.Downloads.Dir,
	}, gw, prefs, dispatcher, zapLogger)
	defer sess.Close()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial load
	if err := sess.Refresh(ctx); err != nil {
		zapLogger.Error("initial load failed", zap.Error(err))
		if errors.Is(err, domain.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "Not authenticated: obtain a token and update the configuration")
			os.Exit(1)
		}
	}

	// Run the shell until EOF or quit
	done := make(chan struct{})
	go func() {
		defer close(done)
		runShell(ctx, sess)
	}()

	// Wait for the shell to end or an interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
	case <-sigChan:
		zapLogger.Info("shutdown signal received")
		cancel()
		<-done
	}

	zapLogger.Info("filedash stopped")
}

// consoleNotifier prints user-facing notifications to stdout.
type consoleNotifier struct{}

func (n *consoleNotifier) HandledEvents() []string {
	return []string{"session.notification", "transfer.download_saved"}
}

func (n *consoleNotifier) Handle(e event.DomainEvent) error {
	switch ev := e.(type) {
	case event.Notification:
		fmt.Printf("[%s] %s\n", ev.Level, ev.Message)
	case event.DownloadSaved:
		fmt.Printf("[saved] %s (%d bytes)\n", ev.Path, ev.Size)
	}
	return nil
}

func runShell(ctx context.Context, sess *session.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("filedash shell - type 'help' for commands")

	for {
		fmt.Printf("%s> ", promptPath(sess))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			return
		}
		if err := runCommand(ctx, sess, cmd, args); err != nil {
			fmt.Printf("error: %v\n", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func promptPath(sess *session.Session) string {
	if sess.InFavoritesView() {
		return "favorites"
	}
	path := sess.Path()
	if len(path) == 0 {
		return "/"
	}
	names := make([]string, len(path))
	for i, ref := range path {
		names[i] = ref.Name
	}
	return "/" + strings.Join(names, "/")
}

func runCommand(ctx context.Context, sess *session.Session, cmd string, args []string) error {
	switch cmd {
	case "help":
		printHelp()
		return nil

	case "ls":
		return printListing(sess)

	case "cd":
		if len(args) < 1 {
			return fmt.Errorf("usage: cd <folder-name>")
		}
		name := strings.Join(args, " ")
		folder, ok := findFolder(sess, name)
		if !ok {
			return fmt.Errorf("no folder named %q here", name)
		}
		if err := sess.EnterFolder(folder.ID, folder.Name); err != nil {
			return err
		}
		return sess.Load(ctx)

	case "up":
		sess.NavigateUp()
		return sess.Load(ctx)

	case "bc":
		if len(args) != 1 {
			return fmt.Errorf("usage: bc <index> (-1 for root)")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad index %q", args[0])
		}
		if err := sess.ResetTo(index); err != nil {
			return err
		}
		return sess.Load(ctx)

	case "mkdir":
		if len(args) < 1 {
			return fmt.Errorf("usage: mkdir <name>")
		}
		_, err := sess.CreateFolder(ctx, strings.Join(args, " "))
		return err

	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: rename <file|folder> <id> <new name>")
		}
		typ, err := domain.ParseItemType(args[0])
		if err != nil {
			return err
		}
		ref := domain.ItemRef{ID: domain.ItemID(args[1]), Type: typ}
		return sess.RenameItem(ctx, ref, strings.Join(args[2:], " "))

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: rm <file|folder> <id>")
		}
		typ, err := domain.ParseItemType(args[0])
		if err != nil {
			return err
		}
		return sess.DeleteItem(ctx, domain.ItemRef{ID: domain.ItemID(args[1]), Type: typ})

	case "rm-sel":
		return sess.DeleteSelected(ctx)

	case "sel":
		if len(args) < 2 {
			return fmt.Errorf("usage: sel <file|folder> <id> [off]")
		}
		typ, err := domain.ParseItemType(args[0])
		if err != nil {
			return err
		}
		selected := len(args) < 3 || args[2] != "off"
		return sess.Select(domain.ItemID(args[1]), typ, selected)

	case "fav":
		if len(args) != 2 {
			return fmt.Errorf("usage: fav <file|folder> <id>")
		}
		typ, err := domain.ParseItemType(args[0])
		if err != nil {
			return err
		}
		now, err := sess.ToggleFavorite(ctx, domain.ItemID(args[1]), typ)
		if err != nil {
			return err
		}
		if now {
			fmt.Println("favorited")
		} else {
			fmt.Println("unfavorited")
		}
		return nil

	case "favs":
		sess.EnterFavoritesView()
		if err := sess.LoadFavorites(ctx); err != nil {
			return err
		}
		return printListing(sess)

	case "back":
		sess.ExitFavoritesView()
		return printListing(sess)

	case "search":
		sess.SetQuery(strings.Join(args, " "))
		return printListing(sess)

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("usage: get <file-id>")
		}
		file, ok := findFile(sess, domain.ItemID(args[0]))
		if !ok {
			return fmt.Errorf("no file %q here", args[0])
		}
		_, err := sess.DownloadFile(ctx, file)
		return err

	case "getdir":
		if len(args) < 1 {
			return fmt.Errorf("usage: getdir <folder-id> [name]")
		}
		name := ""
		if len(args) > 1 {
			name = strings.Join(args[1:], " ")
		}
		_, err := sess.DownloadFolderArchive(ctx, domain.ItemID(args[0]), name)
		return err

	case "put", "putzip":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <local-path>", cmd)
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}
		name := filepath.Base(args[0])
		if cmd == "putzip" {
			return sess.UploadArchive(ctx, name, "application/zip", info.Size(), f)
		}
		return sess.UploadFile(ctx, name, info.Size(), f)

	case "view":
		if len(args) != 1 {
			return fmt.Errorf("usage: view <grid|list>")
		}
		return sess.SetViewMode(args[0])

	case "refresh":
		return sess.Refresh(ctx)

	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

func printHelp() {
	fmt.Print(`commands:
  ls                           list the current view
  cd <folder-name>             enter a folder
  up                           go to the parent folder
  bc <index>                   jump to a breadcrumb entry (-1 is root)
  mkdir <name>                 create a folder here
  rename <file|folder> <id> <new name>
  rm <file|folder> <id>        delete one item
  sel <file|folder> <id> [off] select or deselect an item
  rm-sel                       delete everything selected
  fav <file|folder> <id>       toggle favorite
  favs                         show the favorites view
  back                         leave the favorites view
  search <text>                filter the listing (empty to clear)
  get <file-id>                download a file
  getdir <folder-id> [name]    download a folder as a zip
  put <local-path>             upload a file here
  putzip <local-path>          upload and expand a zip archive
  view <grid|list>             switch the listing view mode
  refresh                      reload contents and favorites
  quit
`)
}

func printListing(sess *session.Session) error {
	v := sess.Visible()
	for _, folder := range v.Folders {
		marker := " "
		if sess.IsSelected(folder.ID, domain.TypeFolder) {
			marker = "*"
		}
		star := " "
		if sess.IsFavorite(folder.ID, domain.TypeFolder) {
			star = "F"
		}
		fmt.Printf("%s%s d %-8s %s (%d items)\n", marker, star, folder.ID, folder.Name, folder.ItemCount)
	}
	for _, file := range v.Files {
		marker := " "
		if sess.IsSelected(file.ID, domain.TypeFile) {
			marker = "*"
		}
		star := " "
		if sess.IsFavorite(file.ID, domain.TypeFile) {
			star = "F"
		}
		fmt.Printf("%s%s - %-8s %s (%d bytes)\n", marker, star, file.ID, file.Filename, file.Size)
	}
	if len(v.Folders) == 0 && len(v.Files) == 0 {
		fmt.Println("(empty)")
	}
	return nil
}

// findFolder resolves a folder by display name within the visible view
func findFolder(sess *session.Session, name string) (domain.Folder, bool) {
	for _, folder := range sess.Visible().Folders {
		if strings.EqualFold(folder.Name, name) {
			return folder, true
		}
	}
	return domain.Folder{}, false
}

// findFile resolves a file by id across the visible view and favorites
func findFile(sess *session.Session, id domain.ItemID) (domain.File, bool) {
	for _, file := range sess.Visible().Files {
		if file.ID == id {
			return file, true
		}
	}
	for _, file := range sess.Favorites().Files {
		if file.ID == id {
			return file, true
		}
	}
	return domain.File{}, false
}
