package scenario

import (
	"fmt"
	"io"
	"strings"

	"ui_automation/domain/entities"

	"github.com/fatih/color"
)

var (
	stepErrorColor   = color.New(color.FgYellow)
	stepFailedColor  = color.New(color.FgRed)
	stepSkippedColor = color.New(color.Faint, color.FgBlue)
	suiteColor       = color.New(color.Bold)
	allPassedColor   = color.New(color.FgGreen)
)

// Reporter receives progress while suites run
type Reporter interface {
	SuiteStarted(name string)
	StepStarted(id string)
	StepError(id string, msg string)
	StepFinished(result entities.StepResult)
}

type nullReporter struct{}

func (nullReporter) SuiteStarted(string)              {}
func (nullReporter) StepStarted(string)               {}
func (nullReporter) StepError(string, string)         {}
func (nullReporter) StepFinished(entities.StepResult) {}

// ConsoleReporter prints colored progress to Out
type ConsoleReporter struct {
	Out io.Writer
}

func (c ConsoleReporter) SuiteStarted(name string) {
	_, _ = suiteColor.Fprintf(c.Out, "%s\n", name)
}

func (c ConsoleReporter) StepStarted(id string) {
	fmt.Fprintf(c.Out, "  [%s]\n", id)
}

func (c ConsoleReporter) StepError(id string, msg string) {
	for _, line := range strings.Split(msg, "\n") {
		_, _ = stepErrorColor.Fprintf(c.Out, "    %s\n", line)
	}
}

func (c ConsoleReporter) StepFinished(result entities.StepResult) {
	switch result.Status {
	case entities.StepStatusFailed:
		_, _ = stepFailedColor.Fprintf(c.Out, "  FAILED: %s\n", result.ID())
	case entities.StepStatusSkipped:
		_, _ = stepSkippedColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", result.ID(), result.Reason)
	}
}

// PrintResults - writes the summary line and the failed step ids
func PrintResults(out io.Writer, results Results) {
	fmt.Fprintf(out, "\n%d passed, %d failed, %d skipped\n",
		results.Count(entities.StepStatusPassed),
		results.Count(entities.StepStatusFailed),
		results.Count(entities.StepStatusSkipped))
	if results.OK() {
		_, _ = allPassedColor.Fprintln(out, "All steps passed")
		return
	}
	failures := results.Failures()
	_, _ = stepFailedColor.Fprintf(out, "FAILED STEPS (%d):\n", len(failures))
	for _, f := range failures {
		_, _ = stepFailedColor.Fprintf(out, "  * %s\n", f.ID())
	}
}
