package main

import (
	"unicode/utf8"
)

// Direction is the data direction of a channel relative to the modem.
type Direction int

const (
	Downstream Direction = iota
	Upstream
)

func (d Direction) String() string {
	if d == Upstream {
		return "upstream"
	}
	return "downstream"
}

// ChannelRecord is one channel row from the status page.
type ChannelRecord struct {
	Direction   Direction
	ChannelID   string
	FrequencyHz float64
	PowerDBmV   float64

	// Downstream is nil for upstream channels.
	Downstream *DownstreamStats
}

// DownstreamStats holds the fields only downstream rows carry.
type DownstreamStats struct {
	SNRdB                  float64
	CodewordsCorrected     uint64
	CodewordsUncorrectable uint64
}

// channelScanner walks the data rows of one channel table, in the style of
// bufio.Scanner. Scanning stops at the first bad row; Err reports why.
type channelScanner struct {
	rows      [][]string
	direction Direction
	layout    pageLayout
	want      int

	next   int
	record ChannelRecord
	seen   map[string]bool
	err    error
}

func newChannelScanner(table [][]string, d Direction, layout pageLayout) *channelScanner {
	return &channelScanner{
		rows:      table,
		direction: d,
		layout:    layout,
		want:      layout.columns(d),
		next:      layout.HeaderRows,
		seen:      map[string]bool{},
	}
}

// Scan advances to the next channel row. It returns false when the table is
// exhausted or a row could not be read.
func (s *channelScanner) Scan() bool {
	if s.err != nil || s.next >= len(s.rows) {
		return false
	}
	i := s.next
	s.next++

	rec, err := s.readRow(i-s.layout.HeaderRows+1, s.rows[i])
	if err != nil {
		s.err = err
		return false
	}
	if s.seen[rec.ChannelID] {
		s.err = &StructureError{Reason: s.direction.String() + " channel " + rec.ChannelID + " is listed twice"}
		return false
	}
	s.seen[rec.ChannelID] = true
	s.record = rec
	return true
}

// Record returns the row read by the most recent successful Scan.
func (s *channelScanner) Record() ChannelRecord {
	return s.record
}

func (s *channelScanner) Err() error {
	return s.err
}

// readRow parses row, the i-th channel row of the table counting from 1.
func (s *channelScanner) readRow(i int, row []string) (ChannelRecord, error) {
	if len(row) < s.want {
		return ChannelRecord{}, &RowShapeError{Direction: s.direction, Row: i, Columns: len(row), Want: s.want}
	}

	var (
		rec = ChannelRecord{Direction: s.direction}
		err error
	)
	field := func(name, text string, parsed error) error {
		if parsed == nil {
			return nil
		}
		return &MalformedFieldError{Direction: s.direction, Row: i, Field: name, Text: text}
	}

	if s.direction == Upstream {
		l := s.layout.Upstream
		rec.ChannelID = row[l.Channel]
		if err = checkChannelID(rec.ChannelID); err != nil {
			return rec, field("channel", rec.ChannelID, err)
		}
		if rec.FrequencyHz, err = parseFrequency(row[l.Frequency]); err != nil {
			return rec, field("frequency", row[l.Frequency], err)
		}
		if rec.PowerDBmV, err = parseNumber(row[l.Power]); err != nil {
			return rec, field("power", row[l.Power], err)
		}
		return rec, nil
	}

	l := s.layout.Downstream
	stats := &DownstreamStats{}
	rec.ChannelID = row[l.Channel]
	if err = checkChannelID(rec.ChannelID); err != nil {
		return rec, field("channel", rec.ChannelID, err)
	}
	if rec.FrequencyHz, err = parseFrequency(row[l.Frequency]); err != nil {
		return rec, field("frequency", row[l.Frequency], err)
	}
	if rec.PowerDBmV, err = parseNumber(row[l.Power]); err != nil {
		return rec, field("power", row[l.Power], err)
	}
	if stats.SNRdB, err = parseNumber(row[l.SNR]); err != nil {
		return rec, field("snr", row[l.SNR], err)
	}
	if stats.CodewordsCorrected, err = parseCount(row[l.Corrected]); err != nil {
		return rec, field("corrected", row[l.Corrected], err)
	}
	if stats.CodewordsUncorrectable, err = parseCount(row[l.Uncorrectable]); err != nil {
		return rec, field("uncorrectable", row[l.Uncorrectable], err)
	}
	rec.Downstream = stats
	return rec, nil
}

// checkChannelID rejects ids that cannot be used as a label value.
func checkChannelID(id string) error {
	if id == "" || !utf8.ValidString(id) {
		return &MalformedFieldError{Text: id}
	}
	return nil
}
