// Package terminal is the command line front end: it reads flags and
// configuration, opens the browser and runs the selected journeys.
package terminal

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ui_automation/application/controls"
	"ui_automation/application/scenario"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/browser"
	"ui_automation/infrastructure/config"
	"ui_automation/infrastructure/logging"
	"ui_automation/infrastructure/storage"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrStepsFailed is returned by Run when at least one step failed
var ErrStepsFailed = errors.New("some steps failed")

// Options are the command line flags
type Options struct {
	EnvFile     string
	DataDir     string
	List        bool
	RerunFailed bool
	Filter      scenario.Filter
}

// ParseOptions - reads flags from args, without the program name
func ParseOptions(args []string, output io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("ui_automation", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.EnvFile, "env", ".env", "env file read before the environment")
	fs.StringVar(&opts.DataDir, "data", "", "directory with scenario data files, overrides DATA_DIR and the bundled data")
	fs.BoolVar(&opts.List, "list", false, "print the selected steps without running them")
	fs.BoolVar(&opts.RerunFailed, "rerun-failed", false, "run only the suites that failed in the last run, narrowed further by -run and -skip")
	fs.Var(&opts.Filter.Run, "run", "regexp of suite/step ids to run, segments split on /; repeatable")
	fs.Var(&opts.Filter.Skip, "skip", "regexp of suite/step ids to skip, segments split on /; repeatable")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

type TerminalInterface struct {
	opts    Options
	cfg     *config.Config
	logger  *logrus.Logger
	logFile io.Closer
	driver  interfaces.Driver
	results interfaces.ResultStore
	out     io.Writer
}

// NewTerminalInterface - loads configuration, starts logging and opens the browser
func NewTerminalInterface(opts Options, out io.Writer) (*TerminalInterface, error) {
	cfg, err := config.LoadFrom(opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	logger, logFile, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	results, err := storage.NewResultStore(cfg.ResultsFile)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	t := &TerminalInterface{
		opts:    opts,
		cfg:     cfg,
		logger:  logger,
		logFile: logFile,
		results: results,
		out:     out,
	}
	if opts.List {
		return t, nil
	}

	driver, err := browser.Open(cfg, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, errors.Wrap(err, "failed to initialize browser")
	}
	t.driver = driver
	return t, nil
}

// Run - runs the selected journeys, stores and prints the results
func (t *TerminalInterface) Run(ctx context.Context) error {
	filter, err := t.filter()
	if err != nil {
		return err
	}

	suites, err := scenario.Build(t.env())
	if err != nil {
		return err
	}

	if t.opts.List {
		t.list(suites, filter)
		return nil
	}

	runner := &scenario.Runner{
		Filter:   filter,
		Reporter: scenario.ConsoleReporter{Out: t.out},
		Logger:   t.logger,
	}
	results := runner.Run(ctx, suites)
	scenario.PrintResults(t.out, results)

	if err := t.results.SaveResults(results.Steps); err != nil {
		return err
	}
	if !results.OK() {
		return ErrStepsFailed
	}
	return nil
}

func (t *TerminalInterface) env() scenario.Env {
	scope := controls.NewScope(t.driver, t.logger)
	scope.PresenceTimeout = t.cfg.PresenceTimeout
	scope.SuggestionTimeout = t.cfg.ExplicitWait

	env := scenario.Env{Scope: scope, RedirectTimeout: t.cfg.ExplicitWait}
	if t.cfg.DataDir != "" {
		env.Data = storage.NewDirSource(t.cfg.DataDir)
	}
	return env
}

// filter - adds the suites that failed last time to the flag filter when asked to
func (t *TerminalInterface) filter() (scenario.Filter, error) {
	filter := t.opts.Filter
	if !t.opts.RerunFailed {
		return filter, nil
	}
	last, err := t.results.LoadResults()
	if err != nil {
		return filter, err
	}
	seen := make(map[string]bool)
	for _, step := range last {
		if step.Status != entities.StepStatusFailed || seen[step.Suite] {
			continue
		}
		seen[step.Suite] = true
		filter.Only = append(filter.Only, scenario.ExactPattern(step.Suite))
	}
	if len(seen) == 0 {
		return filter, errors.New("no failed suites in the last run")
	}
	t.logger.Infof("Rerunning %d failed suites", len(seen))
	return filter, nil
}

func (t *TerminalInterface) list(suites []scenario.Suite, filter scenario.Filter) {
	for _, suite := range suites {
		for _, step := range suite.Steps {
			id := suite.Name + "/" + step.Name
			if !filter.Match(id) {
				continue
			}
			if suite.Skip != "" {
				fmt.Fprintf(t.out, "%s (skipped: %s)\n", id, suite.Skip)
				continue
			}
			fmt.Fprintln(t.out, id)
		}
	}
}

// Close - quits the browser and closes the log file
func (t *TerminalInterface) Close() error {
	var err error
	if t.driver != nil {
		err = t.driver.Quit()
		t.driver = nil
	}
	if t.logFile != nil {
		if closeErr := t.logFile.Close(); err == nil {
			err = closeErr
		}
		t.logFile = nil
	}
	return err
}
