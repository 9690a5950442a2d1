package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/downloader"
	"github.com/desertthunder/mp3x/internal/library"
	"github.com/desertthunder/mp3x/internal/services"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/desertthunder/mp3x/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	spotify    services.Service
	scanner    tasks.LibraryScanner
	downloader tasks.TrackDownloader
	tracks     tasks.TrackCacher
	jobs       tasks.JobRecorder
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.LibraryEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Spotify    services.Service
	Scanner    tasks.LibraryScanner
	Downloader tasks.TrackDownloader
	Tracks     tasks.TrackCacher
	Jobs       tasks.JobRecorder
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.Scanner == nil {
		opts.Scanner = library.NewScanner(opts.Config.Library.AudioFormat, opts.Logger)
	}
	if opts.Downloader == nil {
		opts.Downloader = downloader.NewDownloader(
			opts.Config.Downloader.Path,
			opts.Config.Downloader.StagingDir,
			opts.Logger,
		)
	}

	engine := tasks.NewLibraryEngine(opts.Spotify, opts.Scanner, opts.Downloader, opts.Tracks, opts.Jobs)

	return &Runner{
		config:     opts.Config,
		spotify:    opts.Spotify,
		scanner:    opts.Scanner,
		downloader: opts.Downloader,
		tracks:     opts.Tracks,
		jobs:       opts.Jobs,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger swaps the Runner's logger, e.g. to redirect logs while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, spotifyCommand, libraryCommand, pushCommand, pullCommand, diffCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// reportLastRun prints what the previous sync against the playlist did.
// Silent when the job log is unavailable or empty.
func (r *Runner) reportLastRun(playlistName string) {
	if r.jobs == nil {
		return
	}
	job, err := r.jobs.Latest(playlistName)
	if err != nil || job == nil {
		return
	}
	r.writePlain("Last %s: %s, %d/%d succeeded (%s)\n",
		job.Direction(), job.Status(), job.Succeeded(), job.Total(),
		job.CreatedAt().Format(time.RFC822))
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
