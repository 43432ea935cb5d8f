package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTranslation(t *testing.T) {
	counter := translationRequestsTotal.WithLabelValues("test-backend", StatusTranslated)
	before := testutil.ToFloat64(counter)

	RecordTranslation("test-backend", StatusTranslated, 150*time.Millisecond)
	RecordTranslation("test-backend", StatusTranslated, 50*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordComparison(t *testing.T) {
	counter := comparisonsTotal.WithLabelValues("aborted")
	before := testutil.ToFloat64(counter)

	RecordComparison("aborted")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
