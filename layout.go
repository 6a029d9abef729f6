package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// pageLayout describes where channel data lives on the modem status page.
//
// Every positional assumption about the firmware's HTML is kept here. Table
// indices count all <table> elements in document order and are not looked up
// by content, so a firmware upgrade that adds or removes a table will shift
// them. Such a change surfaces as a StructureError or RowShapeError, never as
// silently wrong values. Column indices are 0-based cell offsets within a row.
type pageLayout struct {
	StatusPath string           `yaml:"status_path"`
	HeaderRows int              `yaml:"header_rows"`
	Downstream downstreamLayout `yaml:"downstream"`
	Upstream   upstreamLayout   `yaml:"upstream"`
}

type downstreamLayout struct {
	Table         int `yaml:"table"`
	Channel       int `yaml:"channel"`
	Frequency     int `yaml:"frequency"`
	Power         int `yaml:"power"`
	SNR           int `yaml:"snr"`
	Corrected     int `yaml:"corrected"`
	Uncorrectable int `yaml:"uncorrectable"`
}

type upstreamLayout struct {
	Table     int `yaml:"table"`
	Channel   int `yaml:"channel"`
	Frequency int `yaml:"frequency"`
	Power     int `yaml:"power"`
}

// defaultLayout matches the Surfboard /cgi-bin/status page.
var defaultLayout = pageLayout{
	StatusPath: "/cgi-bin/status",
	HeaderRows: 2,
	Downstream: downstreamLayout{
		Table:         2,
		Channel:       3,
		Frequency:     4,
		Power:         5,
		SNR:           6,
		Corrected:     7,
		Uncorrectable: 8,
	},
	Upstream: upstreamLayout{
		Table:     3,
		Channel:   3,
		Frequency: 5,
		Power:     6,
	},
}

// loadLayout reads a YAML file on top of defaultLayout, so a file only needs
// to name the values that differ.
func loadLayout(filename string) (pageLayout, error) {
	layout := defaultLayout
	f, err := os.Open(filename)
	if err != nil {
		return layout, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil && err != io.EOF {
		return layout, fmt.Errorf("parsing layout file %s: %w", filename, err)
	}
	if err := layout.validate(); err != nil {
		return layout, fmt.Errorf("layout file %s: %w", filename, err)
	}
	return layout, nil
}

func (l pageLayout) validate() error {
	if l.StatusPath == "" {
		return fmt.Errorf("status_path must not be empty")
	}
	if l.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative")
	}
	if l.Downstream.Table == l.Upstream.Table {
		return fmt.Errorf("downstream and upstream share table %d", l.Downstream.Table)
	}
	for name, v := range map[string]int{
		"downstream.table":         l.Downstream.Table,
		"downstream.channel":       l.Downstream.Channel,
		"downstream.frequency":     l.Downstream.Frequency,
		"downstream.power":         l.Downstream.Power,
		"downstream.snr":           l.Downstream.SNR,
		"downstream.corrected":     l.Downstream.Corrected,
		"downstream.uncorrectable": l.Downstream.Uncorrectable,
		"upstream.table":           l.Upstream.Table,
		"upstream.channel":         l.Upstream.Channel,
		"upstream.frequency":       l.Upstream.Frequency,
		"upstream.power":           l.Upstream.Power,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

// minTables is the number of tables a document needs for both channel tables to exist.
func (l pageLayout) minTables() int {
	return maxInt(l.Downstream.Table, l.Upstream.Table) + 1
}

// columns returns the number of cells a row of the given direction must have.
func (l pageLayout) columns(d Direction) int {
	if d == Upstream {
		u := l.Upstream
		return maxInt(u.Channel, u.Frequency, u.Power) + 1
	}
	ds := l.Downstream
	return maxInt(ds.Channel, ds.Frequency, ds.Power, ds.SNR, ds.Corrected, ds.Uncorrectable) + 1
}

func maxInt(first int, rest ...int) int {
	m := first
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}
