package quotes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoQuotes is returned when a source holds no quote at all.
	ErrNoQuotes = errors.New("no quotes found")
	// ErrInvalidQuote is returned for a quote that is not a positive number.
	ErrInvalidQuote = errors.New("invalid quote")
)

// LoadFile reads a quote series, choosing the format from the file extension:
// .csv, .yaml/.yml or .xml (Central Bank of Russia XML_dynamic).
func LoadFile(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quotes file %s: %w", path, err)
	}
	defer f.Close()

	var s *Series
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		s, err = LoadCSV(f)
	case ".yaml", ".yml":
		s, err = LoadYAML(f)
	case ".xml":
		s, err = LoadCBRXML(f)
	default:
		return nil, fmt.Errorf("unsupported quotes file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func parseQuote(raw string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidQuote, raw)
	}
	if !q.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w %q: must be positive", ErrInvalidQuote, raw)
	}
	return q, nil
}

// LoadCSV reads "period,rate" rows after a header line. Periods are MM/YYYY.
func LoadCSV(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoQuotes
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	s := NewSeries()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected period and rate", line)
		}
		p, err := dateutil.ParsePeriod(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		q, err := parseQuote(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s.Set(p, q)
	}

	if s.Len() == 0 {
		return nil, ErrNoQuotes
	}
	return s, nil
}

// LoadYAML reads a mapping of "MM/YYYY" keys to quotes. The quote text is
// parsed as written so no precision is lost to float decoding.
func LoadYAML(r io.Reader) (*Series, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoQuotes
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("quotes YAML must be a mapping of MM/YYYY to rate")
	}

	root := doc.Content[0]
	s := NewSeries()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		p, err := dateutil.ParsePeriod(key.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %w for %s", val.Line, ErrInvalidQuote, p)
		}
		q, err := parseQuote(val.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", val.Line, err)
		}
		s.Set(p, q)
	}

	if s.Len() == 0 {
		return nil, ErrNoQuotes
	}
	return s, nil
}

const cbrDateLayout = "02.01.2006"

// LoadCBRXML reads a Central Bank of Russia XML_dynamic document:
//
//	<ValCurs ID="R01235"><Record Date="09.01.2024"><Nominal>1</Nominal><Value>89,6883</Value></Record>...</ValCurs>
//
// Values use a decimal comma and are divided by Nominal. The latest record of
// each month becomes that month's quote.
func LoadCBRXML(r io.Reader) (*Series, error) {
	doc := etree.NewDocument()
	// CBR declares windows-1251; the fields read here are ASCII.
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "ValCurs" {
		return nil, fmt.Errorf("not a ValCurs document")
	}

	s := NewSeries()
	latest := make(map[dateutil.Period]time.Time)
	for _, rec := range root.SelectElements("Record") {
		date, err := time.Parse(cbrDateLayout, rec.SelectAttrValue("Date", ""))
		if err != nil {
			return nil, fmt.Errorf("record date: %w", err)
		}
		valueEl := rec.SelectElement("Value")
		if valueEl == nil {
			return nil, fmt.Errorf("record %s: value element not found", date.Format(cbrDateLayout))
		}
		q, err := parseQuote(strings.Replace(valueEl.Text(), ",", ".", 1))
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", date.Format(cbrDateLayout), err)
		}
		if nominalEl := rec.SelectElement("Nominal"); nominalEl != nil {
			nominal, err := parseQuote(nominalEl.Text())
			if err != nil {
				return nil, fmt.Errorf("record %s nominal: %w", date.Format(cbrDateLayout), err)
			}
			q = q.Div(nominal)
		}

		p := dateutil.PeriodOf(date)
		if seen, ok := latest[p]; ok && seen.After(date) {
			continue
		}
		latest[p] = date
		s.Set(p, q)
	}

	if s.Len() == 0 {
		return nil, ErrNoQuotes
	}
	return s, nil
}
