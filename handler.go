package main

import (
	"net/http"
)

// newHandler routes the landing page and the telemetry path. Everything else is a 404.
func newHandler(metricsPath string, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, metrics)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html>
             <head><title>Surfboard Exporter</title></head>
             <body>
             <h1>Surfboard Exporter</h1>
             <p><a href='` + metricsPath + `'>Metrics</a></p>
             </body>
             </html>`))
	})
	return mux
}
