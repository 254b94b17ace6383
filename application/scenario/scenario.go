// Package scenario runs user journeys against the page objects. A journey is
// a suite of ordered steps sharing page state; steps assert through testify
// on a T scope, so a failed step stops its suite and the rest is skipped.
package scenario

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Step is one assertion block of a suite
type Step struct {
	Name string
	Run  func(ctx context.Context, t *T)
}

// Suite is an ordered list of steps run against one browser state. A non-empty
// Skip reason skips every step.
type Suite struct {
	Name  string
	Skip  string
	Steps []Step
}

// T is the scope of one running step. It satisfies testify's require.TestingT.
type T struct {
	id         string
	log        logrus.FieldLogger
	reporter   Reporter
	failed     bool
	skipped    bool
	skipReason string
	errors     []string
}

func newT(id string, log logrus.FieldLogger, reporter Reporter) *T {
	return &T{id: id, log: log, reporter: reporter}
}

// ID - returns suite/step
func (t *T) ID() string {
	return t.id
}

// Errorf - marks the step failed and records the message; the step goes on
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	msg := fmt.Sprintf(format, args...)
	t.errors = append(t.errors, msg)
	t.log.Errorf("[%s] %s", t.id, msg)
	t.reporter.StepError(t.id, msg)
}

// FailNow - stops the step, marked failed
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Skip - stops the step, marked skipped
func (t *T) Skip(reason string) {
	t.skipped = true
	t.skipReason = reason
	panic(t)
}

// Logf - writes to the run log under the step id
func (t *T) Logf(format string, args ...interface{}) {
	t.log.Infof("[%s] "+format, append([]interface{}{t.id}, args...)...)
}

// Helper - present for testify, stack traces are not trimmed
func (t *T) Helper() {}

// Failed - reports whether the step has failed so far
func (t *T) Failed() bool {
	return t.failed
}

// run executes fn and converts the panics raised by FailNow and Skip; any other panic fails the step
func (t *T) run(ctx context.Context, fn func(ctx context.Context, t *T)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(*T); ok {
			return
		}
		t.Errorf("unexpected panic in step: %+v", r)
	}()
	fn(ctx, t)
}
