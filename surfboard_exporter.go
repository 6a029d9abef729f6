package main

import (
	"net/http"

	"github.com/prometheus/common/log"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	exporterName = "surfboard_exporter"
	namespace    = "surfboard"
)

func main() {
	var (
		listenAddress = kingpin.Flag("web.listen-address", "Address to listen on for web interface and telemetry.").Default(":9239").OverrideDefaultFromEnvar("SURFBOARD_EXPORTER_LISTEN_ADDRESS").String()
		metricsPath   = kingpin.Flag("web.telemetry-path", "Path under which to expose metrics.").Default("/metrics").String()
		modemAddress  = kingpin.Flag("modem.address", "Address of the Surfboard modem.").Default("192.168.100.1").OverrideDefaultFromEnvar("SURFBOARD_EXPORTER_MODEM_ADDRESS").String()
		modemTimeout  = kingpin.Flag("modem.timeout", "Timeout for HTTP requests to the Surfboard modem.").Default("5s").OverrideDefaultFromEnvar("SURFBOARD_EXPORTER_MODEM_TIMEOUT").Duration()
		layoutFile    = kingpin.Flag("modem.layout-file", "YAML file overriding the status page layout (table positions, column offsets).").String()
	)

	log.AddFlags(kingpin.CommandLine)
	kingpin.Version(version.Print(exporterName))
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	log.Infoln("Starting", exporterName, version.Info())
	log.Infoln("Build context", version.BuildContext())

	layout := defaultLayout
	if *layoutFile != "" {
		var err error
		if layout, err = loadLayout(*layoutFile); err != nil {
			log.Fatal(err)
		}
		log.Infoln("Loaded page layout from", *layoutFile)
	}

	exporter, err := NewExporter(*modemAddress, *modemTimeout, layout)
	if err != nil {
		log.Fatal(err)
	}

	log.Infoln("Listening on", *listenAddress)
	log.Fatal(http.ListenAndServe(*listenAddress, newHandler(*metricsPath, exporter)))
}
