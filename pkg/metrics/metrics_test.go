package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("summary", "error"))
	RecordQuery("summary", errors.New("boom"), 10*time.Millisecond)
	after := testutil.ToFloat64(QueriesTotal.WithLabelValues("summary", "error"))

	if after-before != 1 {
		t.Fatalf("error counter moved by %v, want 1", after-before)
	}
}

func TestRecordCycle(t *testing.T) {
	before := testutil.ToFloat64(CyclesTotal.WithLabelValues(OutcomeEmpty))
	RecordCycle(OutcomeEmpty)
	if got := testutil.ToFloat64(CyclesTotal.WithLabelValues(OutcomeEmpty)) - before; got != 1 {
		t.Fatalf("empty counter moved by %v, want 1", got)
	}
}
