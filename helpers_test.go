package tracecheck_test

import (
	"fmt"
	"testing"
)

// stamp mimics the subject's log line prefix at trace level.
const stamp = "2019-08-13T21:12:43.112 TRACE [cinit] "

func traceLine(msg string) string {
	return stamp + msg
}

// failRecorder captures fatal assertion failures instead of aborting the
// test, so failure paths can be observed in-process. All other testing.TB
// behavior is delegated to the real test.
type failRecorder struct {
	testing.TB
	failed bool
	msg    string
}

func record(t *testing.T) *failRecorder {
	return &failRecorder{TB: t}
}

func (r *failRecorder) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}

func (r *failRecorder) Fatal(args ...any) {
	r.failed = true
	r.msg = fmt.Sprint(args...)
}

func (r *failRecorder) Helper() {}
