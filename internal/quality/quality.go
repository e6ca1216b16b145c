// Package quality is a composable check library applied to any layer's
// output. Checks never raise on bad data; every check returns a structured
// result with a severity, and the caller decides whether failures gate the
// run.
package quality

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Severity grades how a failed check affects the run.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Result is the outcome of one check.
type Result struct {
	Name        string
	Passed      bool
	Severity    Severity
	Message     string
	FailedCount int
	TotalCount  int
	FailedPct   float64
}

func (r Result) String() string {
	status := "PASSED"
	if !r.Passed {
		status = "FAILED"
	}
	return fmt.Sprintf("%s [%s] %s: %s (%d/%d = %.2f%%)",
		status, strings.ToUpper(string(r.Severity)), r.Name, r.Message,
		r.FailedCount, r.TotalCount, r.FailedPct)
}

// Validator accumulates check results over one dataset. Column values are
// reached through accessor functions, so any row type works.
type Validator[T any] struct {
	table   string
	rows    []T
	results []Result
}

func NewValidator[T any](table string, rows []T) *Validator[T] {
	return &Validator[T]{table: table, rows: rows}
}

func (v *Validator[T]) Table() string     { return v.table }
func (v *Validator[T]) Results() []Result { return v.results }

func (v *Validator[T]) record(name, message string, failed int, sev Severity) Result {
	total := len(v.rows)
	r := Result{
		Name:        name,
		Passed:      failed == 0,
		Severity:    sev,
		Message:     message,
		FailedCount: failed,
		TotalCount:  total,
	}
	if total > 0 {
		r.FailedPct = float64(failed) / float64(total) * 100
	}
	v.results = append(v.results, r)
	return r
}

// CheckNotNull counts rows where isNull reports true for the named column.
func (v *Validator[T]) CheckNotNull(column string, isNull func(T) bool, sev Severity) Result {
	failed := 0
	for _, row := range v.rows {
		if isNull(row) {
			failed++
		}
	}
	return v.record("not_null_"+column, fmt.Sprintf("Null check for %q", column), failed, sev)
}

// CheckUnique verifies the key function yields a distinct value per row.
// The failed count is total rows minus distinct keys.
func (v *Validator[T]) CheckUnique(columns string, key func(T) string, sev Severity) Result {
	seen := make(map[string]struct{}, len(v.rows))
	for _, row := range v.rows {
		seen[key(row)] = struct{}{}
	}
	dups := len(v.rows) - len(seen)
	return v.record("unique_"+columns, fmt.Sprintf("Uniqueness check for %q", columns), dups, sev)
}

// CheckValuesInSet counts rows whose value is outside the allowed set.
func (v *Validator[T]) CheckValuesInSet(column string, value func(T) string, allowed []string, sev Severity) Result {
	valid := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		valid[a] = struct{}{}
	}
	failed := 0
	for _, row := range v.rows {
		if _, ok := valid[value(row)]; !ok {
			failed++
		}
	}
	msg := fmt.Sprintf("Values in %q must be one of %v", column, allowed)
	return v.record("valid_values_"+column, msg, failed, sev)
}

// CheckRange counts rows whose value falls outside [min, max]; either bound
// may be nil. Rows with a null value pass here, the not-null check owns
// those.
func (v *Validator[T]) CheckRange(column string, value func(T) *float64, min, max *float64, sev Severity) Result {
	failed := 0
	for _, row := range v.rows {
		f := value(row)
		if f == nil {
			continue
		}
		if (min != nil && *f < *min) || (max != nil && *f > *max) {
			failed++
		}
	}
	msg := fmt.Sprintf("Values in %q must be in range [%s, %s]", column, boundDesc(min), boundDesc(max))
	return v.record("range_"+column, msg, failed, sev)
}

func boundDesc(b *float64) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *b)
}

// CheckRowCount verifies the dataset size is within [min, max]; max may be
// nil for no upper bound.
func (v *Validator[T]) CheckRowCount(min int, max *int, sev Severity) Result {
	count := len(v.rows)
	passed := count >= min && (max == nil || count <= *max)
	desc := fmt.Sprintf(">= %d", min)
	if max != nil {
		desc = fmt.Sprintf("[%d, %d]", min, *max)
	}
	failed := 0
	if !passed {
		failed = 1
	}
	return v.record("row_count", fmt.Sprintf("Row count (%d) must be %s", count, desc), failed, sev)
}

// CheckFreshness verifies the maximum timestamp in the dataset is no older
// than maxAge relative to now. A dataset with no timestamps fails.
func (v *Validator[T]) CheckFreshness(column string, ts func(T) time.Time, maxAge time.Duration, now time.Time, sev Severity) Result {
	var max time.Time
	for _, row := range v.rows {
		if t := ts(row); t.After(max) {
			max = t
		}
	}
	if max.IsZero() {
		r := v.record("freshness_"+column, "No timestamps found in data", 1, sev)
		return r
	}
	age := now.Sub(max)
	failed := 0
	if age > maxAge {
		failed = 1
	}
	msg := fmt.Sprintf("Most recent data is %.1f hours old (max: %.0f)", age.Hours(), maxAge.Hours())
	return v.record("freshness_"+column, msg, failed, sev)
}

// CheckRefIntegrity counts distinct foreign-key values in the target that
// are absent from the reference dataset's key column. It is a set
// difference over distinct values, not an anti-join row count, so the
// failed count is in orphaned key values rather than rows.
func CheckRefIntegrity[T, R any, K comparable](v *Validator[T], column string, fk func(T) K, ref []R, pk func(R) K, sev Severity) Result {
	keys := make(map[K]struct{}, len(ref))
	for _, r := range ref {
		keys[pk(r)] = struct{}{}
	}
	distinct := make(map[K]struct{})
	for _, row := range v.rows {
		distinct[fk(row)] = struct{}{}
	}
	orphans := 0
	for k := range distinct {
		if _, ok := keys[k]; !ok {
			orphans++
		}
	}
	msg := fmt.Sprintf("Foreign key %q must exist in reference table", column)
	return v.record("ref_integrity_"+column, msg, orphans, sev)
}

// AllPassed reports whether no error-severity check failed, and, when
// includeWarnings is set, no warning-severity check either. Failed info
// checks never affect the aggregate.
func (v *Validator[T]) AllPassed(includeWarnings bool) bool {
	for _, r := range v.results {
		if r.Passed {
			continue
		}
		if r.Severity == SeverityError {
			return false
		}
		if includeWarnings && r.Severity == SeverityWarning {
			return false
		}
	}
	return true
}

// Summary renders every result in registration order with a pass tally.
func (v *Validator[T]) Summary() string {
	passed := 0
	for _, r := range v.results {
		if r.Passed {
			passed++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Data Quality Report for %s\n", v.table)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Total rows: %d\n\n", len(v.rows))
	fmt.Fprintf(&b, "Checks passed: %d/%d\n\n", passed, len(v.results))
	for _, r := range v.results {
		b.WriteString(r.String() + "\n")
	}
	return b.String()
}

// Log writes every result at a level matching its outcome and severity.
func (v *Validator[T]) Log(log *slog.Logger) {
	log = log.With("table", v.table)
	for _, r := range v.results {
		switch {
		case r.Passed:
			log.Info(r.String(), "check", r.Name)
		case r.Severity == SeverityWarning:
			log.Warn(r.String(), "check", r.Name)
		case r.Severity == SeverityInfo:
			log.Info(r.String(), "check", r.Name)
		default:
			log.Error(r.String(), "check", r.Name)
		}
	}
}
