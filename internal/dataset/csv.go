// Package dataset loads asset lists from delimited files and exposes named datasets
// declared in a YAML manifest.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// ErrEmptyFile is returned when the input has no header line.
var ErrEmptyFile = errors.New("dataset file is empty")

// ParseError reports a field that could not be read as a number.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads assets from r. The first line is a header; columns are name, price and
// yield in that order, separated by ';' when the header contains one and ',' otherwise.
//
// Rows without exactly three fields, with an empty field or with a price that rounds
// to zero or below are skipped. A price that is not a number, or a non-numeric yield on a row that was
// not skipped, aborts parsing with a *ParseError.
func Parse(r io.Reader) ([]model.Asset, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = strings.TrimPrefix(header, "\ufeff")
	if strings.TrimSpace(header) == "" {
		return nil, ErrEmptyFile
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(header)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	assets := make([]model.Asset, 0)
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to read record: %w", line, err)
		}

		asset, ok, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		if ok {
			assets = append(assets, asset)
		}
	}

	return assets, nil
}

// LoadFile parses the file at path.
func LoadFile(path string) ([]model.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	assets, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return assets, nil
}

func detectDelimiter(header string) rune {
	if strings.ContainsRune(header, ';') {
		return ';'
	}
	return ','
}

func parseRecord(record []string, line int) (model.Asset, bool, error) {
	if len(record) != 3 {
		return model.Asset{}, false, nil
	}

	name := strings.TrimSpace(record[0])
	rawPrice := strings.TrimSpace(record[1])
	rawYield := strings.TrimSpace(record[2])
	if name == "" || rawPrice == "" || rawYield == "" {
		return model.Asset{}, false, nil
	}

	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return model.Asset{}, false, &ParseError{Line: line, Field: "price", Value: rawPrice, Err: err}
	}
	// prices below half a unit round to zero and cannot be indexed
	if model.RoundPrice(price) <= 0 {
		return model.Asset{}, false, nil
	}
	yield, err := strconv.ParseFloat(rawYield, 64)
	if err != nil {
		return model.Asset{}, false, &ParseError{Line: line, Field: "yield", Value: rawYield, Err: err}
	}
	return model.NewAsset(name, price, yield), true, nil
}
