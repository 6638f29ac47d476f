package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"scoreline/internal/repositories"
	"scoreline/internal/services"
	"scoreline/internal/session"
	"scoreline/internal/shared"
	"scoreline/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	client    *services.Client
	auth      *services.AuthService
	matches   *services.MatchService
	comments  *services.CommentService
	session   *session.Session
	snapshots *repositories.MatchRepository
	engine    *tasks.FlowEngine
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Client    *services.Client
	Session   *session.Session
	Snapshots *repositories.MatchRepository
	Logger    *log.Logger
	Output    io.Writer
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
	if opts.Session == nil {
		opts.Session = session.New(nil, opts.Logger)
	}
	if opts.Client == nil {
		opts.Client = services.NewClient(opts.Config.API.BaseURL, nil, opts.Session)
	}

	auth := services.NewAuthService(opts.Client)
	matches := services.NewMatchService(opts.Client)
	comments := services.NewCommentService(opts.Client)
	engine := tasks.NewFlowEngine(auth, matches, comments, opts.Session, opts.Logger)

	return &Runner{
		config:    opts.Config,
		client:    opts.Client,
		auth:      auth,
		matches:   matches,
		comments:  comments,
		session:   opts.Session,
		snapshots: opts.Snapshots,
		engine:    engine,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, matchesCommand, eventsCommand, commentsCommand, snapshotCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used when the TUI takes over the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// gate consults the access requirement for a command before its action runs.
// The verdict mirrors route-guard behavior: protected commands bounce to login
// with the original target remembered, guest-only commands bounce home.
func (r *Runner) gate(requirement session.Requirement, target string) error {
	decision := session.Decide(requirement, r.session.IsAuthenticated(), target)
	switch decision.Verdict {
	case session.RedirectLogin:
		return fmt.Errorf("%w: run 'scoreline auth login' first, then retry '%s'", shared.ErrNotAuthenticated, decision.ReturnTo)
	case session.RedirectHome:
		return fmt.Errorf("already signed in, run 'scoreline auth logout' first")
	}
	return nil
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
