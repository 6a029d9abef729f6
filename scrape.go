package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/prometheus/common/log"
)

const maxPageSize = 4 << 20

// Scraper runs one fetch, locate, extract and assemble cycle per call. It
// holds no per-scrape state and is safe for concurrent use.
type Scraper struct {
	statusURL string
	client    *http.Client
	layout    pageLayout
}

// NewScraper returns a Scraper for the modem at address, which may be a host,
// host:port or a base URL.
func NewScraper(address string, client *http.Client, layout pageLayout) (*Scraper, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	base := address
	if u, err := url.Parse(address); err != nil || u.Scheme == "" || u.Host == "" {
		base = "http://" + address
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	u.Path = path.Join(u.Path, layout.StatusPath)

	return &Scraper{statusURL: u.String(), client: client, layout: layout}, nil
}

// Scrape returns the complete metric set for the modem, or the first error met.
// No metrics are returned alongside an error.
func (s *Scraper) Scrape(ctx context.Context) (*MetricSet, error) {
	start := time.Now()

	page, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	log.Debugf("Parsing %d bytes from %s", len(page), s.statusURL)
	tables, err := parseTables(bytes.NewReader(page))
	if err != nil {
		return nil, &StructureError{Reason: err.Error()}
	}
	downTable, upTable, err := s.locateTables(tables)
	if err != nil {
		return nil, err
	}

	var records []ChannelRecord
	for _, t := range []struct {
		rows      [][]string
		direction Direction
	}{
		{downTable, Downstream},
		{upTable, Upstream},
	} {
		scanner := newChannelScanner(t.rows, t.direction, s.layout)
		for scanner.Scan() {
			records = append(records, scanner.Record())
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	set := assembleMetrics(records)
	return set.finish(time.Since(start)), nil
}

func (s *Scraper) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.statusURL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.statusURL, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.statusURL, Err: err}
	}
	defer resp.Body.Close()

	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return nil, &FetchError{URL: s.statusURL, StatusCode: resp.StatusCode}
	}

	page, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxPageSize+1))
	if err != nil {
		return nil, &FetchError{URL: s.statusURL, StatusCode: resp.StatusCode, Err: err}
	}
	if len(page) > maxPageSize {
		return nil, &FetchError{URL: s.statusURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("page larger than %d bytes", maxPageSize)}
	}
	return page, nil
}

// locateTables picks the channel tables by their position on the page.
func (s *Scraper) locateTables(tables [][][]string) (down, up [][]string, err error) {
	if len(tables) < s.layout.minTables() {
		return nil, nil, &StructureError{Reason: fmt.Sprintf("found %d tables, want at least %d", len(tables), s.layout.minTables())}
	}
	down = tables[s.layout.Downstream.Table]
	up = tables[s.layout.Upstream.Table]
	if len(down) < s.layout.HeaderRows {
		return nil, nil, &StructureError{Reason: fmt.Sprintf("downstream table has %d rows, want at least %d header rows", len(down), s.layout.HeaderRows)}
	}
	if len(up) < s.layout.HeaderRows {
		return nil, nil, &StructureError{Reason: fmt.Sprintf("upstream table has %d rows, want at least %d header rows", len(up), s.layout.HeaderRows)}
	}
	return down, up, nil
}
