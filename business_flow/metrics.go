package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_logins_total",
			Help: "Successful vendor logins partitioned by admin flag",
		},
		[]string{"admin"},
	)

	selectionReplacements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_selection_replacements_total",
			Help: "Selection replace attempts partitioned by outcome",
		},
		[]string{"outcome"},
	)

	selectionsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_selections_stored_total",
			Help: "Number of selection rows written",
		},
	)

	catalogFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_fallbacks_total",
			Help: "Catalog requests answered with an empty page after an upstream failure",
		},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_exports_total",
			Help: "Generated selection exports partitioned by format",
		},
		[]string{"format"},
	)
)

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
