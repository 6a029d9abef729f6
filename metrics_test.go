package main

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecords = []ChannelRecord{
	{
		Direction:   Downstream,
		ChannelID:   "1",
		FrequencyHz: 549000000,
		PowerDBmV:   6.4,
		Downstream:  &DownstreamStats{SNRdB: 38.5, CodewordsCorrected: 1234},
	},
	{
		Direction:   Downstream,
		ChannelID:   "2",
		FrequencyHz: 555000000,
		PowerDBmV:   -1.2,
		Downstream:  &DownstreamStats{SNRdB: 37.9, CodewordsCorrected: 56, CodewordsUncorrectable: 7},
	},
	{
		Direction:   Upstream,
		ChannelID:   "2",
		FrequencyHz: 30600000,
		PowerDBmV:   45,
	},
}

// gather collects c into a fresh registry and indexes the families by name.
func gather(t *testing.T, c prometheus.Collector) map[string]*dto.MetricFamily {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	mfs, err := reg.Gather()
	require.NoError(t, err)

	families := map[string]*dto.MetricFamily{}
	for _, mf := range mfs {
		families[mf.GetName()] = mf
	}
	return families
}

func TestAssembleMetrics(t *testing.T) {
	t.Parallel()

	set := assembleMetrics(testRecords).finish(1500 * time.Millisecond)
	families := gather(t, set)

	for name, want := range map[string]int{
		"surfboard_downstream_frequency_hertz":               2,
		"surfboard_downstream_power_dbmv":                    2,
		"surfboard_downstream_snr_db":                        2,
		"surfboard_downstream_codewords_corrected_total":     2,
		"surfboard_downstream_codewords_uncorrectable_total": 2,
		"surfboard_upstream_frequency_hertz":                 1,
		"surfboard_upstream_power_dbmv":                      1,
		"surfboard_scrape_duration_seconds":                  1,
	} {
		require.Contains(t, families, name)
		assert.Len(t, families[name].GetMetric(), want, name)
	}

	duration := families["surfboard_scrape_duration_seconds"].GetMetric()[0]
	assert.Equal(t, 1.5, duration.GetGauge().GetValue())
	assert.Empty(t, duration.GetLabel())
	assert.Equal(t, dto.MetricType_COUNTER, families["surfboard_downstream_codewords_corrected_total"].GetType())
}

func TestAssembleMetrics_Exposition(t *testing.T) {
	t.Parallel()

	expected := `
# HELP surfboard_downstream_codewords_corrected_total Downstream codewords corrected
# TYPE surfboard_downstream_codewords_corrected_total counter
surfboard_downstream_codewords_corrected_total{channel="1"} 1234
surfboard_downstream_codewords_corrected_total{channel="2"} 56
# HELP surfboard_downstream_codewords_uncorrectable_total Downstream codewords uncorrectable
# TYPE surfboard_downstream_codewords_uncorrectable_total counter
surfboard_downstream_codewords_uncorrectable_total{channel="1"} 0
surfboard_downstream_codewords_uncorrectable_total{channel="2"} 7
# HELP surfboard_downstream_frequency_hertz Downstream frequency in Hertz
# TYPE surfboard_downstream_frequency_hertz gauge
surfboard_downstream_frequency_hertz{channel="1"} 5.49e+08
surfboard_downstream_frequency_hertz{channel="2"} 5.55e+08
# HELP surfboard_upstream_power_dbmv Upstream power level in dBmV
# TYPE surfboard_upstream_power_dbmv gauge
surfboard_upstream_power_dbmv{channel="2"} 45
`
	err := testutil.CollectAndCompare(assembleMetrics(testRecords).finish(time.Second), strings.NewReader(expected),
		"surfboard_downstream_codewords_corrected_total",
		"surfboard_downstream_codewords_uncorrectable_total",
		"surfboard_downstream_frequency_hertz",
		"surfboard_upstream_power_dbmv",
	)
	assert.NoError(t, err)
}

func TestAssembleMetrics_NoChannels(t *testing.T) {
	t.Parallel()

	families := gather(t, assembleMetrics(nil).finish(time.Millisecond))
	assert.Len(t, families, 1)
	assert.Contains(t, families, "surfboard_scrape_duration_seconds")
}

func TestAssembleMetrics_NoDurationBeforeFinish(t *testing.T) {
	t.Parallel()

	families := gather(t, assembleMetrics(testRecords))
	assert.NotContains(t, families, "surfboard_scrape_duration_seconds")
	assert.Contains(t, families, "surfboard_upstream_power_dbmv")
}
