package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var channelLabelNames = []string{"channel"}

func newChannelMetric(subsystemName, metricName, docString string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemName, metricName), docString, channelLabelNames, nil)
}

var (
	downFrequency          = newChannelMetric("downstream", "frequency_hertz", "Downstream frequency in Hertz")
	downPower              = newChannelMetric("downstream", "power_dbmv", "Downstream power level in dBmV")
	downSNR                = newChannelMetric("downstream", "snr_db", "Downstream signal to noise ratio in dB")
	downCodesCorrected     = newChannelMetric("downstream", "codewords_corrected_total", "Downstream codewords corrected")
	downCodesUncorrectable = newChannelMetric("downstream", "codewords_uncorrectable_total", "Downstream codewords uncorrectable")
	upFrequency            = newChannelMetric("upstream", "frequency_hertz", "Upstream frequency in Hertz")
	upPower                = newChannelMetric("upstream", "power_dbmv", "Upstream power level in dBmV")

	scrapeDuration = prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "scrape_duration_seconds"), "Time the Surfboard scrape took, in seconds", nil, nil)
)

var channelDescs = []*prometheus.Desc{
	downFrequency,
	downPower,
	downSNR,
	downCodesCorrected,
	downCodesUncorrectable,
	upFrequency,
	upPower,
	scrapeDuration,
}

// MetricSet is the result of one successful scrape. It is a
// prometheus.Collector and is never modified once assembled.
type MetricSet struct {
	metrics []prometheus.Metric
}

// assembleMetrics turns the channel records of one scrape into metrics.
// Codewords are exposed as two counters per channel; the device resets them
// on reboot.
func assembleMetrics(records []ChannelRecord) *MetricSet {
	set := &MetricSet{metrics: make([]prometheus.Metric, 0, len(records)*5+1)}
	add := func(desc *prometheus.Desc, valueType prometheus.ValueType, value float64, channel string) {
		set.metrics = append(set.metrics, prometheus.MustNewConstMetric(desc, valueType, value, channel))
	}

	for _, r := range records {
		if r.Direction == Upstream {
			add(upFrequency, prometheus.GaugeValue, r.FrequencyHz, r.ChannelID)
			add(upPower, prometheus.GaugeValue, r.PowerDBmV, r.ChannelID)
			continue
		}
		add(downFrequency, prometheus.GaugeValue, r.FrequencyHz, r.ChannelID)
		add(downPower, prometheus.GaugeValue, r.PowerDBmV, r.ChannelID)
		if r.Downstream != nil {
			add(downSNR, prometheus.GaugeValue, r.Downstream.SNRdB, r.ChannelID)
			add(downCodesCorrected, prometheus.CounterValue, float64(r.Downstream.CodewordsCorrected), r.ChannelID)
			add(downCodesUncorrectable, prometheus.CounterValue, float64(r.Downstream.CodewordsUncorrectable), r.ChannelID)
		}
	}
	return set
}

// finish appends the scrape duration. It is the last step of a successful scrape.
func (s *MetricSet) finish(duration time.Duration) *MetricSet {
	s.metrics = append(s.metrics, prometheus.MustNewConstMetric(scrapeDuration, prometheus.GaugeValue, duration.Seconds()))
	return s
}

// Describe implements prometheus.Collector.
func (s *MetricSet) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range channelDescs {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (s *MetricSet) Collect(ch chan<- prometheus.Metric) {
	for _, m := range s.metrics {
		ch <- m
	}
}
