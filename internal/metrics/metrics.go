// Package metrics exposes watch-mode run counters over Prometheus.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/open-constructs/docmigrate/internal/report"
)

// Recorder registers and updates the migration counters on its own registry.
type Recorder struct {
	registry *prom.Registry

	runsTotal        prom.Counter
	filesChanged     prom.Counter
	protectionsTotal prom.Counter
	reviewItemsTotal prom.Counter
	leaksTotal       prom.Counter
}

// NewRecorder creates a Recorder with base process collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prom.NewRegistry(),
		runsTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "docmigrate", Name: "runs_total",
			Help: "Total migration runs executed"}),
		filesChanged: prom.NewCounter(prom.CounterOpts{
			Namespace: "docmigrate", Name: "files_changed_total",
			Help: "Total files changed across runs"}),
		protectionsTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "docmigrate", Name: "protections_total",
			Help: "Total protected-pattern sentinels applied"}),
		reviewItemsTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "docmigrate", Name: "review_items_total",
			Help: "Total manual-review items collected"}),
		leaksTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "docmigrate", Name: "protection_leaks_total",
			Help: "Total protection leaks detected"}),
	}

	r.registry.MustRegister(r.runsTotal, r.filesChanged, r.protectionsTotal, r.reviewItemsTotal, r.leaksTotal)
	r.registry.MustRegister(
		promcollect.NewGoCollector(),
		promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRun folds one finished run's report into the counters.
func (r *Recorder) ObserveRun(rep *report.Report) {
	r.runsTotal.Inc()
	r.filesChanged.Add(float64(rep.FilesChanged))
	r.protectionsTotal.Add(float64(rep.Protections))
	r.reviewItemsTotal.Add(float64(len(rep.Review)))
	r.leaksTotal.Add(float64(len(rep.Leaks)))
}

// Handler returns the scrape handler for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics HTTP server on listen. It blocks, so callers run it
// in a goroutine; errors surface through the returned server's lifecycle.
func (r *Recorder) Serve(listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	server := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
