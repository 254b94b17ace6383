package scenario

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"ui_automation/domain/entities"

	"github.com/sirupsen/logrus"
)

const skippedAfterFailure = "previous step failed"

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Pattern matches an id segment by segment; each segment is a regular expression
type Pattern []*regexp.Regexp

// ParsePattern - splits s on "/" and compiles each part
func ParsePattern(s string) (Pattern, error) {
	parts := strings.Split(s, "/")
	p := make(Pattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
		}
		p = append(p, rx)
	}
	return p, nil
}

// Match - reports whether every segment matches; with prefix a shorter id may match the leading segments
func (p Pattern) Match(id []string, prefix bool) bool {
	n := len(p)
	if n > len(id) {
		if !prefix {
			return false
		}
		n = len(id)
	}
	for i := 0; i < n; i++ {
		if !p[i].MatchString(id[i]) {
			return false
		}
	}
	return true
}

// ExactPattern - matches id and everything below it, with no regexp in its segments
func ExactPattern(id string) Pattern {
	parts := strings.Split(id, "/")
	p := make(Pattern, 0, len(parts))
	for _, part := range parts {
		p = append(p, regexp.MustCompile("^"+regexp.QuoteMeta(part)+"$"))
	}
	return p
}

func (p Pattern) String() string {
	parts := make([]string, 0, len(p))
	for _, rx := range p {
		parts = append(parts, rx.String())
	}
	return strings.Join(parts, "/")
}

// PatternList is a repeatable command line flag
type PatternList []Pattern

func (l PatternList) String() string {
	parts := make([]string, 0, len(l))
	for _, p := range l {
		parts = append(parts, `"`+p.String()+`"`)
	}
	return strings.Join(parts, " or ")
}

// Set - parses and appends a pattern
func (l *PatternList) Set(value string) error {
	p, err := ParsePattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l PatternList) any(id []string, prefix bool) bool {
	for _, p := range l {
		if p.Match(id, prefix) {
			return true
		}
	}
	return false
}

// Filter selects steps by id: a step runs when it matches some Run pattern (or
// there are none) and no Skip pattern. Only, when set, further restricts the
// steps to those matching one of its patterns.
type Filter struct {
	Run  PatternList
	Skip PatternList
	Only PatternList
}

// Match - reports whether the step with the given suite/step id runs
func (f Filter) Match(id string) bool {
	segments := strings.Split(id, "/")
	return (len(f.Run) == 0 || f.Run.any(segments, false)) &&
		(len(f.Only) == 0 || f.Only.any(segments, false)) &&
		!f.Skip.any(segments, false)
}

// Results is the outcome of every step a run visited
type Results struct {
	Steps []entities.StepResult
}

// Count - returns the number of steps with status
func (r Results) Count(status entities.StepStatus) int {
	n := 0
	for _, step := range r.Steps {
		if step.Status == status {
			n++
		}
	}
	return n
}

// Failures - returns the failed steps
func (r Results) Failures() []entities.StepResult {
	var failed []entities.StepResult
	for _, step := range r.Steps {
		if step.Status == entities.StepStatusFailed {
			failed = append(failed, step)
		}
	}
	return failed
}

// OK - true when no step failed
func (r Results) OK() bool {
	return r.Count(entities.StepStatusFailed) == 0
}

// Runner runs suites in order and collects their results
type Runner struct {
	Filter   Filter
	Reporter Reporter
	Logger   logrus.FieldLogger
}

// Run - runs every suite; after cancellation the remaining steps are recorded as skipped
func (r *Runner) Run(ctx context.Context, suites []Suite) Results {
	reporter := r.Reporter
	if reporter == nil {
		reporter = nullReporter{}
	}
	logger := r.Logger
	if logger == nil {
		logger = discard
	}

	var results Results
	for _, suite := range suites {
		started := false
		skip := suite.Skip
		for _, step := range suite.Steps {
			id := suite.Name + "/" + step.Name
			if !r.Filter.Match(id) {
				continue
			}
			if !started {
				started = true
				logger.Infof("Suite started: %s", suite.Name)
				reporter.SuiteStarted(suite.Name)
			}

			result := entities.StepResult{Suite: suite.Name, Step: step.Name}
			switch {
			case ctx.Err() != nil:
				result.Status, result.Reason = entities.StepStatusSkipped, ctx.Err().Error()
			case skip != "":
				result.Status, result.Reason = entities.StepStatusSkipped, skip
			default:
				result = r.runStep(ctx, suite.Name, step, reporter, logger)
				if result.Status == entities.StepStatusFailed {
					skip = skippedAfterFailure
				}
			}

			if result.Status == entities.StepStatusSkipped {
				logger.Infof("Step skipped: %s (%s)", id, result.Reason)
			}
			reporter.StepFinished(result)
			results.Steps = append(results.Steps, result)
		}
	}
	return results
}

func (r *Runner) runStep(ctx context.Context, suite string, step Step, reporter Reporter, logger logrus.FieldLogger) entities.StepResult {
	id := suite + "/" + step.Name
	reporter.StepStarted(id)
	logger.Infof("Step started: %s", id)

	t := newT(id, logger, reporter)
	start := time.Now()
	t.run(ctx, step.Run)

	result := entities.StepResult{
		Suite:    suite,
		Step:     step.Name,
		Status:   entities.StepStatusPassed,
		Errors:   t.errors,
		Duration: time.Since(start),
	}
	switch {
	case t.failed:
		result.Status = entities.StepStatusFailed
	case t.skipped:
		result.Status = entities.StepStatusSkipped
		result.Reason = t.skipReason
	}
	logger.Infof("Step finished: %s %s in %s", id, result.Status, result.Duration)
	return result
}
