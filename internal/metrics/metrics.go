// Package metrics holds the Prometheus instruments exposed by the companyform
// server. Every collector is registered with the default registry in init,
// so serving promhttp.Handler is enough to publish them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultValid    = "valid"
	ResultInvalid  = "invalid"
)

var (
	CatalogCompanies = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "companyform_catalog_companies",
			Help: "Number of companies in the loaded catalog.",
		})

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companyform_submissions_total",
			Help: "Form submissions by company and result.",
		}, []string{"company", "result"})

	FieldValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companyform_field_validations_total",
			Help: "Single-field validations (change or blur) by company and result.",
		}, []string{"company", "result"})

	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companyform_renders_total",
			Help: "Rendered form views by renderer.",
		}, []string{"renderer"})

	CSRFRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "companyform_csrf_rejections_total",
			Help: "Form posts rejected for a missing or invalid CSRF token.",
		})
)

func init() {
	prometheus.MustRegister(
		CatalogCompanies,
		SubmissionsTotal,
		FieldValidationsTotal,
		RendersTotal,
		CSRFRejectionsTotal,
	)
}

// ObserveSubmission counts one submission outcome.
func ObserveSubmission(company string, success bool) {
	result := ResultRejected
	if success {
		result = ResultAccepted
	}
	SubmissionsTotal.WithLabelValues(company, result).Inc()
}

// ObserveValidation counts one single-field validation outcome.
func ObserveValidation(company string, valid bool) {
	result := ResultInvalid
	if valid {
		result = ResultValid
	}
	FieldValidationsTotal.WithLabelValues(company, result).Inc()
}
