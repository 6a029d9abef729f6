package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/log"
	"github.com/prometheus/common/version"
)

// Exporter serves the metrics endpoint. Every request runs its own scrape;
// only the exporter's own metrics live in the process registry.
type Exporter struct {
	scraper  *Scraper
	registry *prometheus.Registry

	totalScrapes          prometheus.Counter
	scrapeErrors          *prometheus.CounterVec
	clientRequestCount    *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec
}

func NewExporter(address string, timeout time.Duration, layout pageLayout) (*Exporter, error) {
	client := &http.Client{}
	client.Timeout = timeout

	clientRequestCount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exporter_client_requests_total",
		Help:      "HTTP requests to the Surfboard modem",
	}, []string{"code", "method"})

	clientRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "exporter_client_request_duration_seconds",
		Help:      "Histogram of Surfboard HTTP request latencies.",
	}, []string{"code", "method"})

	client.Transport = promhttp.InstrumentRoundTripperCounter(clientRequestCount,
		promhttp.InstrumentRoundTripperDuration(clientRequestDuration, http.DefaultTransport))

	scraper, err := NewScraper(address, client, layout)
	if err != nil {
		return nil, err
	}

	e := &Exporter{
		scraper:  scraper,
		registry: prometheus.NewRegistry(),
		totalScrapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exporter_scrapes_total",
			Help:      "Current total Surfboard scrapes.",
		}),
		scrapeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exporter_scrape_errors_total",
			Help:      "Number of failed Surfboard scrapes by error kind.",
		}, []string{"kind"}),
		clientRequestCount:    clientRequestCount,
		clientRequestDuration: clientRequestDuration,
	}
	for _, kind := range errorKinds {
		e.scrapeErrors.WithLabelValues(kind)
	}

	e.registry.MustRegister(
		e.totalScrapes,
		e.scrapeErrors,
		e.clientRequestCount,
		e.clientRequestDuration,
		version.NewCollector(exporterName),
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return e, nil
}

// ServeHTTP scrapes the modem and writes the result together with the
// exporter's own metrics. A failed scrape is answered with a 500 that only
// names the error kind.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.totalScrapes.Inc()

	set, err := e.scraper.Scrape(r.Context())
	if err != nil {
		kind := errorKind(err)
		e.scrapeErrors.WithLabelValues(kind).Inc()
		log.Errorf("Scrape of %s failed: %v", e.scraper.statusURL, err)
		http.Error(w, fmt.Sprintf("Scrape failed (%s error), see exporter log for details.", kind), http.StatusInternalServerError)
		return
	}

	scrapeRegistry := prometheus.NewRegistry()
	if err := scrapeRegistry.Register(set); err != nil {
		log.Errorln("Registering scrape result failed:", err)
		http.Error(w, "Scrape failed, see exporter log for details.", http.StatusInternalServerError)
		return
	}

	// Gather has no request argument, so the scrape's registry is bound by
	// building the handler here. HandlerFor only allocates the handler closure.
	promhttp.HandlerFor(prometheus.Gatherers{e.registry, scrapeRegistry}, promhttp.HandlerOpts{
		ErrorLog:      errorLogger{},
		ErrorHandling: promhttp.HTTPErrorOnError,
	}).ServeHTTP(w, r)
}

// errorLogger routes promhttp errors to the exporter log.
type errorLogger struct{}

func (errorLogger) Println(v ...interface{}) {
	log.Errorln(v...)
}
