package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordins_rows_total",
			Help: "Ingested input rows by entity and outcome",
		},
		[]string{"entity", "outcome"}, // customer|order , accepted|dropped|rejected
	)

	LoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordins_loads_total",
			Help: "Store reload attempts by result",
		},
		[]string{"result"}, // ok|error
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RowsTotal,
		LoadsTotal,
	)
}
