// Package tracecheck provides black-box testing for process supervisors.
//
// tracecheck runs a real supervisor binary against a test configuration,
// drains its diagnostic output into an immutable trace, and asserts that a
// temporal pattern of events occurred, through the standard [testing.TB]
// interface. It was built to validate cinit but works with any supervisor
// that logs trace-level lines and persists per-child descriptor records.
//
// # Quick Start
//
//	func TestStartup(t *testing.T) {
//		res := tracecheck.Run(t, "testdata/single-child")
//		res.AssertExitCode(0)
//		res.OnTrace().That(tracecheck.Sequential(
//			tracecheck.ChildSpawned("ping"),
//			tracecheck.ChildExited("ping"),
//			tracecheck.Exited(),
//		))
//	}
//
// Cleanup of descriptor records is automatic through t.Cleanup; there is no
// Close method.
//
// # Runs and Traces
//
// [Run] launches the subject with fixed diagnostic flags (two --verbose
// flags and --config pointing into the test directory), stdin from the null
// device and stderr merged into stdout. It blocks until the subject exits,
// so a scan never observes a still-growing trace. The subject binary is
// resolved in this order:
//
//   - [WithBinary]
//   - TRACECHECK_UUT
//   - PATH lookup for cinit
//
// # Matchers
//
// A [Matcher] expresses a temporal or concurrency pattern over the trace:
//
//   - [Pattern]: one line carrying the TRACE marker whose remainder matches
//     a regular expression as a whole
//   - [Sequential]: children consumed strictly in order, greedy and without
//     backtracking
//   - [Parallel]: children consumed in any order; one line may satisfy
//     several children at once
//   - [AnyOf]: single-line disjunction, meant for nesting
//
// Composition is unrestricted; any variant may nest any other. Named event
// matchers such as [ChildSpawned], [ChildCrashed] and [Exited] wrap Pattern
// with the exact messages the supervisor emits.
//
// # Scanning
//
// [Cursor.That] scans forward until the matcher completes, using up every
// examined line; [Cursor.Then] chains a later pattern strictly after an
// earlier one; [Cursor.Restart] rewinds for assertions over the whole trace.
// "Parallel" is a logical-order relaxation over the captured trace, not
// concurrent scanning: evaluation is purely sequential.
//
// # Child Descriptors
//
// For every process the subject spawns, a YAML record keyed by program name
// is persisted under the child-dump directory. [Result.Child] reads one
// record for field-level assertions (arguments, uid/gid, capabilities,
// environment); [Result.AssertNoChild] asserts a child never ran. Record
// absence is only a pass when asserted explicitly.
//
// # Diagnostics
//
// On scan failure, tracecheck reports the matcher's structural description
// (what is still pending), the unconsumed remainder of the trace, and the
// full trace. Set TRACECHECK_VERBOSE=1 or pass [WithDumpLog] to log the
// trace for passing runs too. Golden comparison of traces and matcher
// descriptions uses go test -update to regenerate files under testdata.
package tracecheck
