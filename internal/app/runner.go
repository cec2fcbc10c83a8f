package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/juparave/appverify/internal/advise"
	"github.com/juparave/appverify/internal/check"
	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/domain"
	"github.com/juparave/appverify/internal/notify"
	"github.com/juparave/appverify/internal/report"
	"github.com/juparave/appverify/internal/util"
)

// Runner orchestrates the full verification flow
type Runner struct {
	config *config.Config
	logger *zap.SugaredLogger
	fs     billy.Filesystem
	out    io.Writer
	checks []check.Check
	report *report.Formatter
}

// Option customizes a Runner
type Option func(*Runner)

// WithFilesystem replaces the OS filesystem rooted at config.RootPath
func WithFilesystem(fs billy.Filesystem) Option {
	return func(r *Runner) { r.fs = fs }
}

// WithOutput sets where progress and the summary are written
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		config: cfg,
		out:    os.Stdout,
		checks: check.Sequence(cfg.Rules),
		report: report.NewFormatter(cfg.Reports.OutputDir),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop().Sugar()
	}
	if r.fs == nil {
		r.fs = util.OpenRoot(cfg.RootPath)
	}
	return r
}

// Run executes every check, prints the summary and returns the result.
// The returned error covers configuration and output failures only;
// findings are reported through the result.
func (r *Runner) Run(ctx context.Context) (*domain.RunResult, error) {
	startTime := time.Now()

	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r.logger.Debugw("starting verification", "root", r.config.RootPath)

	text := r.format() == report.FormatText
	if text {
		fmt.Fprintln(r.out, "🔍 Verifying Lista Compra app...")
		fmt.Fprintln(r.out)
	}

	cctx := check.NewContext(r.fs, r.logger)
	for i, c := range r.checks {
		if text {
			fmt.Fprintf(r.out, "%d. %s...\n", i+1, c.Title())
		}
		before := cctx.Reporter.Len()
		c.Run(cctx)
		r.logger.Debugw("check finished", "check", c.Name(), "findings", cctx.Reporter.Len()-before)
	}

	res := cctx.Reporter.Result(r.config.RootPath, startTime, cctx.FilesScanned)

	if err := r.report.Render(r.out, res, r.format()); err != nil {
		return res, fmt.Errorf("rendering report: %w", err)
	}

	reportPath, err := r.report.Write(res, r.format())
	if err != nil {
		return res, fmt.Errorf("writing report: %w", err)
	}
	if reportPath != "" {
		r.logger.Debugw("report saved", "path", reportPath)
		if text {
			fmt.Fprintf(r.out, "\n📄 Report saved to %s\n", reportPath)
		}
	}

	r.advise(ctx, res)
	r.notify(ctx, res)

	r.logger.Debugw("verification complete",
		"errors", res.ErrorCount(),
		"warnings", res.WarningCount(),
		"elapsed", time.Since(startTime).Round(time.Millisecond))

	return res, nil
}

func (r *Runner) format() string {
	if r.config.Reports.Format == "" {
		return report.FormatText
	}
	return r.config.Reports.Format
}

// advise asks the LLM advisor to explain the findings. Failures are logged
// and never change the verdict.
func (r *Runner) advise(ctx context.Context, res *domain.RunResult) {
	if !r.config.Advisor.Enabled || !res.HasFindings() {
		return
	}

	advisor, err := advise.NewAdvisor(ctx, r.config.Advisor, r.logger)
	if err != nil {
		r.logger.Warnw("initializing advisor", "error", err)
		return
	}

	text, err := advisor.Advise(ctx, res)
	if err != nil {
		r.logger.Warnw("advisor failed", "error", err)
		return
	}

	if r.format() != report.FormatText {
		r.logger.Infow("advisor", "advice", text)
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "💡 Advice:")
	fmt.Fprintln(r.out, text)
}

// notify emails the report when findings exist. Failures are logged.
func (r *Runner) notify(ctx context.Context, res *domain.RunResult) {
	if !r.config.Email.Enabled || !res.HasFindings() {
		return
	}

	svc := notify.NewService(r.config.Email, r.logger)
	if err := svc.SendReport(ctx, res); err != nil {
		r.logger.Warnw("sending email", "error", err)
		return
	}
	r.logger.Infow("email sent", "to", r.config.Email.ToAddress)
}
