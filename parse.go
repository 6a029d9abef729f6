package main

import (
	"bytes"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseTables returns every table in the document, in document order, as rows
// of trimmed cell text. Nested tables are listed after the table containing them.
func parseTables(r io.Reader) (tables [][][]string, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	tables = [][][]string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, parseTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return tables, nil
}

func parseTable(tableNode *html.Node) (table [][]string) {
	table = [][]string{}

	var contentBuffer bytes.Buffer
	addRow := func(rowNode *html.Node) {
		row := []string{}
		for cellNode := rowNode.FirstChild; cellNode != nil; cellNode = cellNode.NextSibling {
			if cellNode.Type == html.ElementNode && (cellNode.DataAtom == atom.Th || cellNode.DataAtom == atom.Td) {
				contentBuffer.Reset()
				collectText(&contentBuffer, cellNode)
				row = append(row, strings.TrimSpace(contentBuffer.String()))
			}
		}
		table = append(table, row)
	}

	// html.Parse wraps bare rows in an implied tbody.
	for bodyNode := tableNode.FirstChild; bodyNode != nil; bodyNode = bodyNode.NextSibling {
		if bodyNode.Type != html.ElementNode || !(bodyNode.DataAtom == atom.Thead || bodyNode.DataAtom == atom.Tbody || bodyNode.DataAtom == atom.Tfoot) {
			continue
		}
		for rowNode := bodyNode.FirstChild; rowNode != nil; rowNode = rowNode.NextSibling {
			if rowNode.Type == html.ElementNode && rowNode.DataAtom == atom.Tr {
				addRow(rowNode)
			}
		}
	}
	return table
}

func collectText(buf *bytes.Buffer, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			buf.WriteString(c.Data)
		case html.ElementNode:
			collectText(buf, c)
		}
	}
}

var (
	numberPattern    = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
	countPattern     = regexp.MustCompile(`[-+]?\d+(?:,\d{3})*`)
	frequencyPattern = regexp.MustCompile(`([-+]?\d+(?:\.\d+)?)[\s\x{00a0}]*(\pL*)`)
)

// frequencyMultipliers is keyed by the lower-cased unit.
var frequencyMultipliers = map[string]float64{
	"hz":  1,
	"khz": 1e3,
	"mhz": 1e6,
	"ghz": 1e9,
	// The device reports bare numbers in MHz.
	"": 1e6,
}

// parseNumber returns the first decimal number found in text, ignoring any
// surrounding unit or whitespace.
func parseNumber(text string) (float64, error) {
	s := numberPattern.FindString(text)
	if s == "" {
		return 0, &MalformedFieldError{Text: text}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedFieldError{Text: text}
	}
	return v, nil
}

// parseCount returns the first run of digits in text as a non-negative
// integer. Comma thousands separators are accepted.
func parseCount(text string) (uint64, error) {
	s := countPattern.FindString(text)
	if s == "" {
		return 0, &MalformedFieldError{Text: text}
	}
	s = strings.ReplaceAll(strings.TrimPrefix(s, "+"), ",", "")
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &MalformedFieldError{Text: text}
	}
	return v, nil
}

// parseFrequency returns the frequency in text in whole Hertz, honouring a
// Hz, kHz, MHz or GHz suffix in any case. Any other word after the number
// is malformed.
func parseFrequency(text string) (float64, error) {
	m := frequencyPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, &MalformedFieldError{Text: text}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 {
		return 0, &MalformedFieldError{Text: text}
	}
	multiplier, ok := frequencyMultipliers[strings.ToLower(m[2])]
	if !ok {
		return 0, &MalformedFieldError{Text: text}
	}
	return math.Round(v * multiplier), nil
}
