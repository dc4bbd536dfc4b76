package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/bigbang/pkg/errors"
)

// Column names recognized in CSV headers.
const (
	ColCharacter  = "character"
	ColWord       = "word"
	ColCount      = "count"
	ColSeason     = "season"
	ColID         = "id"
	ColUniqueness = "uniqueness_score"
)

var requiredColumns = []string{ColCharacter, ColWord, ColCount}

// ReadCSV decodes word-usage records from r.
//
// The first row is the header. Unknown columns are ignored. Empty optional
// cells are treated as absent. Numeric parse failures are reported with the
// 1-based line number of the offending row.
//
// ReadCSV does not close r.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "missing required column %q", c)
		}
	}

	var recs []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		ID:        cell(ColID),
		Character: cell(ColCharacter),
		Word:      cell(ColWord),
	}

	count, err := strconv.ParseFloat(cell(ColCount), 64)
	if err != nil {
		return Record{}, fmt.Errorf("count: %w", err)
	}
	rec.Count = count

	if s := cell(ColSeason); s != "" {
		season, err := strconv.Atoi(s)
		if err != nil {
			return Record{}, fmt.Errorf("season: %w", err)
		}
		rec.Season = season
	}
	if s := cell(ColUniqueness); s != "" {
		u, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Record{}, fmt.Errorf("uniqueness_score: %w", err)
		}
		rec.Uniqueness = &u
	}
	return rec, nil
}

// ReadJSON decodes a JSON array of records from r.
//
// Each element uses the keys "category", "weight", and optionally "id",
// "label", "season" and "uniqueness_score".
func ReadJSON(r io.Reader) ([]Record, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return recs, nil
}

// ImportCSV reads a CSV file at path. See [ReadCSV].
func ImportCSV(path string) ([]Record, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ImportJSON reads a JSON file at path. See [ReadJSON].
func ImportJSON(path string) ([]Record, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// Import reads path as CSV or JSON depending on its extension.
func Import(path string) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path)
	}
	return ImportCSV(path)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
