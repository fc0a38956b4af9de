package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plxdev/plx/internal/repositories"
	"github.com/plxdev/plx/internal/services"
	"github.com/plxdev/plx/internal/shared"
	"github.com/plxdev/plx/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	playlists  services.PlaylistAPI
	store      *store.Store
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	assumeYes  bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Playlists  services.PlaylistAPI
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Playlists == nil {
		opts.Playlists = services.NewPlaylistService(
			opts.Config.Server.BaseURL,
			opts.HTTPClient,
			time.Duration(opts.Config.Server.TimeoutSeconds)*time.Second,
		)
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewCatalogService(
			opts.Config.Catalog.BaseURL,
			opts.HTTPClient,
			opts.Config.Catalog.RateLimit,
			opts.Config.Catalog.Burst,
		)
	}

	r := &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		playlists:  opts.Playlists,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}

	r.store = store.New(store.Opts{
		API:     opts.Playlists,
		Confirm: store.ConfirmFunc(r.confirm),
		Logger:  opts.Logger,
	})

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, playlistCommand, searchCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// confirm prompts on the runner's input stream and accepts y/yes. The --yes
// flag short-circuits it for scripted use.
func (r *Runner) confirm(prompt string) bool {
	if r.assumeYes {
		return true
	}

	r.writePlain("%s [y/N]: ", prompt)
	reader := bufio.NewReader(r.input)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// openHistory opens the local search-history database. Callers must invoke
// the returned close func.
func (r *Runner) openHistory() (*repositories.HistoryRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	history := repositories.NewHistoryRepository(db)
	if err := history.Init(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize history table: %w", err)
	}

	return history, func() { db.Close() }, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
