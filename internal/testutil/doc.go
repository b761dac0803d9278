// Package testutil provides fluent builders for events and facts used
// across the test suites. Builders apply sensible defaults; chain only
// the parts a test cares about.
package testutil
