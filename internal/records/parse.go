package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Header is the exact first line the estimator writes.
const Header = "TargetID,TrueX,TrueY,TrueZ,EstX,EstY,EstZ,AvgError"

// Columns is Header split into its fields, in order.
var Columns = strings.Split(Header, ",")

const fieldCount = 8

// Parse validates estimator stdout and returns its rows as a RecordSet.
// Empty input and header-only input both yield an empty set. Any schema
// violation returns a *MalformedDataError.
func Parse(text string) (RecordSet, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader is Parse over a stream.
func ParseReader(r io.Reader) (RecordSet, error) {
	reader := csv.NewReader(r)
	// Field counts are checked per row so the error carries the line.
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return RecordSet{}, nil
	}
	if err != nil {
		return RecordSet{}, csvError(err)
	}
	if got := strings.Join(header, ","); got != Header {
		return RecordSet{}, &MalformedDataError{
			Line:   1,
			Text:   got,
			Reason: fmt.Sprintf("header must be %q", Header),
		}
	}

	var recs []TargetRecord
	seen := make(map[string]int)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return RecordSet{}, csvError(err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row)
		if err != nil {
			return RecordSet{}, &MalformedDataError{Line: line, Text: strings.Join(row, ","), Reason: err.Error()}
		}
		if first, dup := seen[rec.ID]; dup {
			return RecordSet{}, &MalformedDataError{
				Line:   line,
				Text:   strings.Join(row, ","),
				Reason: fmt.Sprintf("duplicate target ID %q (first seen on line %d)", rec.ID, first),
			}
		}
		seen[rec.ID] = line
		recs = append(recs, rec)
	}

	return RecordSet{records: recs}, nil
}

func parseRow(row []string) (TargetRecord, error) {
	if len(row) != fieldCount {
		return TargetRecord{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(row))
	}
	id := row[0]
	if strings.TrimSpace(id) == "" {
		return TargetRecord{}, errors.New("empty TargetID")
	}

	var vals [fieldCount - 1]float64
	for i := range vals {
		col := Columns[i+1]
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return TargetRecord{}, fmt.Errorf("%s: %q is not a number", col, row[i+1])
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return TargetRecord{}, fmt.Errorf("%s: %q is not finite", col, row[i+1])
		}
		vals[i] = v
	}
	if vals[6] < 0 {
		return TargetRecord{}, fmt.Errorf("AvgError: %v is negative", vals[6])
	}

	return TargetRecord{
		ID:        id,
		True:      r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]},
		Estimated: r3.Vec{X: vals[3], Y: vals[4], Z: vals[5]},
		AvgError:  vals[6],
	}, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedDataError{Line: pe.Line, Reason: pe.Err.Error()}
	}
	return fmt.Errorf("read estimator output: %w", err)
}
