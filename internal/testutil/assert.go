// Package testutil provides shared test helpers.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", msg, diff)
		} else {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
}

// AssertNoError fails the test immediately if err is not nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Fatalf("%s: unexpected error: %v", msg, err)
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorIs fails if err does not match target under errors.Is.
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: error = %v, want %v", msg, err, target)
		} else {
			t.Errorf("error = %v, want %v", err, target)
		}
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t *testing.T, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: %q does not contain %q", msg, got, substr)
		} else {
			t.Errorf("%q does not contain %q", got, substr)
		}
	}
}

func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
