package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/pkg/models"
)

// Action is a session menu entry.
type Action string

const (
	ActionCompute Action = "compute"
	ActionSave    Action = "save"
	ActionQuit    Action = "quit"
)

// Prompter asks the user for session input.
type Prompter interface {
	Action(ctx context.Context, hasResult bool) (Action, error)
	Input(ctx context.Context, defaults models.FormDefaults) (sizing.Input, error)
	SavePath(ctx context.Context, suggested string) (string, error)
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Defaults   models.FormDefaults
	Options    []sizing.Option
	Language   report.Language
	Meta       report.Meta
	ReportPath string
	Logger     *slog.Logger
}

// Session runs the compute / save report loop. The last computed result is
// carried as a local value from Compute into Save; nothing is kept on the
// Session between runs.
type Session struct {
	prompter Prompter
	theme    *Theme
	out      io.Writer
	cfg      SessionConfig
}

// NewSession creates a Session that prompts through p and prints to out.
func NewSession(p Prompter, theme *Theme, out io.Writer, cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = "README" + report.DefaultExtension
	}
	return &Session{prompter: p, theme: theme, out: out, cfg: cfg}
}

// Run loops until the user quits or ctx is cancelled. Errors from a single
// action are shown and the loop continues; only cancellation ends it early.
func (s *Session) Run(ctx context.Context) error {
	var last *sizing.Result
	defaults := s.cfg.Defaults
	_, _ = fmt.Fprintln(s.out, s.theme.primary().Bold(true).Render("Isolated footing design"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := s.prompter.Action(ctx, last != nil)
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil
			}
			return err
		}

		switch action {
		case ActionCompute:
			res, err := s.Compute(ctx, defaults)
			if err != nil {
				if errors.Is(err, ErrCancelled) {
					continue
				}
				s.printError(err)
				continue
			}
			last = res
			defaults = models.FormDefaults{
				AxialLoad:         res.Input.AxialLoad,
				MomentX:           res.Input.MomentX,
				MomentY:           res.Input.MomentY,
				AllowablePressure: res.Input.AllowablePressure,
			}
		case ActionSave:
			path, err := s.Save(ctx, last)
			switch {
			case errors.Is(err, report.ErrNoResult):
				s.printWarning("Compute a design first, then save the report.")
			case errors.Is(err, ErrCancelled):
			case err != nil:
				s.printError(err)
			default:
				s.printSuccess("Report saved to " + path)
			}
		case ActionQuit:
			return nil
		default:
			return fmt.Errorf("ui: unknown action %q", action)
		}
	}
}

// Compute asks for inputs, sizes the footing and prints the result card.
func (s *Session) Compute(ctx context.Context, defaults models.FormDefaults) (*sizing.Result, error) {
	in, err := s.prompter.Input(ctx, defaults)
	if err != nil {
		return nil, err
	}
	res, err := sizing.Design(in, s.cfg.Options...)
	if err != nil {
		return nil, err
	}
	s.cfg.Logger.Debug("design computed", "status", res.Status, "iterations", res.Iterations)
	_, _ = fmt.Fprintln(s.out, ResultCard(s.theme, res, s.cfg.Language))
	return res, nil
}

// Save exports res. It returns report.ErrNoResult without prompting when
// res is nil.
func (s *Session) Save(ctx context.Context, res *sizing.Result) (string, error) {
	if res == nil {
		return "", report.ErrNoResult
	}
	path, err := s.prompter.SavePath(ctx, s.cfg.ReportPath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", ErrCancelled
	}
	written, err := report.Export(path, res, s.cfg.Meta, s.cfg.Language)
	if err != nil {
		return "", err
	}
	s.cfg.Logger.Info("report exported", "path", written)
	return written, nil
}

func (s *Session) printError(err error) {
	_, _ = fmt.Fprintln(s.out, s.theme.failure().Render("✗ Error: "+err.Error()))
}

func (s *Session) printWarning(msg string) {
	_, _ = fmt.Fprintln(s.out, s.theme.warning().Render("! "+msg))
}

func (s *Session) printSuccess(msg string) {
	_, _ = fmt.Fprintln(s.out, s.theme.success().Render("✓ "+msg))
}

// FormPrompter implements Prompter with huh forms. Headless, it plays a
// fixed script: compute once, save when a report path default is set, quit.
type FormPrompter struct {
	theme    *Theme
	headless *HeadlessManager
	form     *Form
	computed bool
	saved    bool
}

// NewFormPrompter creates a FormPrompter.
func NewFormPrompter(theme *Theme, hm *HeadlessManager) *FormPrompter {
	return &FormPrompter{theme: theme, headless: hm, form: NewForm(theme, hm)}
}

// Action shows the session menu. "Save report" is listed only once a
// result exists.
func (p *FormPrompter) Action(ctx context.Context, hasResult bool) (Action, error) {
	if p.headless.IsHeadless() {
		_, wantSave := p.headless.GetDefault(KeyReportPath)
		switch {
		case !p.computed:
			p.computed = true
			return ActionCompute, nil
		case hasResult && wantSave && !p.saved:
			p.saved = true
			return ActionSave, nil
		default:
			return ActionQuit, nil
		}
	}

	opts := []huh.Option[Action]{huh.NewOption("Compute design", ActionCompute)}
	if hasResult {
		opts = append(opts, huh.NewOption("Save report", ActionSave))
	}
	opts = append(opts, huh.NewOption("Quit", ActionQuit))

	choice := ActionCompute
	sel := huh.NewSelect[Action]().
		Title("What next?").
		Options(opts...).
		Value(&choice)
	if err := p.run(ctx, sel); err != nil {
		return "", err
	}
	return choice, nil
}

// Input shows the input form.
func (p *FormPrompter) Input(ctx context.Context, defaults models.FormDefaults) (sizing.Input, error) {
	return p.form.Ask(ctx, defaults)
}

// SavePath asks for the report file path.
func (p *FormPrompter) SavePath(ctx context.Context, suggested string) (string, error) {
	if p.headless.IsHeadless() {
		if v, ok := p.headless.GetDefault(KeyReportPath); ok && v != "" {
			return v, nil
		}
		if suggested == "" {
			return "", ErrHeadlessNoDefaults
		}
		return suggested, nil
	}

	path := suggested
	inp := huh.NewInput().
		Title("Save report as").
		Description("Markdown by default; use .pdf for a PDF document").
		Placeholder(suggested).
		Value(&path)
	if err := p.run(ctx, inp); err != nil {
		return "", err
	}
	return path, nil
}

func (p *FormPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme.huhTheme()).
		WithAccessible(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("form error: %w", err)
	}
	return nil
}
