package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSubmission(t *testing.T) {
	before := testutil.ToFloat64(SubmissionsTotal.WithLabelValues("Acme", ResultAccepted))
	ObserveSubmission("Acme", true)
	ObserveSubmission("Acme", false)
	assert.Equal(t, before+1, testutil.ToFloat64(SubmissionsTotal.WithLabelValues("Acme", ResultAccepted)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(SubmissionsTotal.WithLabelValues("Acme", ResultRejected)), 1.0)
}

func TestObserveValidation(t *testing.T) {
	before := testutil.ToFloat64(FieldValidationsTotal.WithLabelValues("Globex", ResultInvalid))
	ObserveValidation("Globex", false)
	assert.Equal(t, before+1, testutil.ToFloat64(FieldValidationsTotal.WithLabelValues("Globex", ResultInvalid)))
}
