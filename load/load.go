// Package load reads the rows of charts from CSV files and Excel workbooks.
package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/midbel/charts/v2"
)

const (
	DefaultDelimiter  = ","
	DefaultTimeFormat = "%Y-%m-%d"
)

var ErrColumns = errors.New("not enough columns")

type Options struct {
	Delimiter   rune
	TimeFormat  string
	Sheet       string
	Concurrency int
}

func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		TimeFormat:  DefaultTimeFormat,
		Concurrency: 4,
	}
}

type ParseError struct {
	File string
	Line int
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// Rows reads x, y and an optional z column, x being kept as is.
func Rows(file string, opts Options) ([]charts.Row[string], error) {
	return readRows(file, opts, func(str string) (string, error) {
		return str, nil
	})
}

func NumberRows(file string, opts Options) ([]charts.Row[float64], error) {
	return readRows(file, opts, func(str string) (float64, error) {
		return strconv.ParseFloat(str, 64)
	})
}

func TimeRows(file string, opts Options) ([]charts.Row[time.Time], error) {
	parseTime, err := charts.MakeParseTime(opts.TimeFormat)
	if err != nil {
		return nil, err
	}
	return readRows(file, opts, parseTime)
}

// Candles reads date, open, high, low, close and an optional volume column.
func Candles(file string, opts Options) ([]charts.Candle[time.Time], error) {
	parseTime, err := charts.MakeParseTime(opts.TimeFormat)
	if err != nil {
		return nil, err
	}
	var list []charts.Candle[time.Time]
	err = readFile(file, opts, func(row []string) error {
		if len(row) < 5 {
			return ErrColumns
		}
		when, err := parseTime(row[0])
		if err != nil {
			return err
		}
		var vs [5]float64
		for i := 1; i < len(row) && i <= len(vs); i++ {
			if vs[i-1], err = parseValue(row[i]); err != nil {
				return err
			}
		}
		c := charts.TimeCandle(when, vs[0], vs[1], vs[2], vs[3], vs[4])
		if math.IsNaN(c.Volume) {
			c.Volume = 0
		}
		if !c.Valid() {
			return fmt.Errorf("invalid candle at %s", row[0])
		}
		list = append(list, c)
		return nil
	})
	return list, err
}

func readRows[T charts.ScalerConstraint](file string, opts Options, parseX func(string) (T, error)) ([]charts.Row[T], error) {
	var list []charts.Row[T]
	err := readFile(file, opts, func(row []string) error {
		if len(row) < 2 {
			return ErrColumns
		}
		x, err := parseX(row[0])
		if err != nil {
			return err
		}
		y, err := parseValue(row[1])
		if err != nil {
			return err
		}
		r := charts.Row[T]{
			X: x,
			Y: y,
		}
		if len(row) > 2 {
			r.Z = strings.TrimSpace(row[2])
		}
		list = append(list, r)
		return nil
	})
	return list, err
}

// parseValue gives NaN for empty cells.
func parseValue(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(str, 64)
}

func readFile(file string, opts Options, read func(row []string) error) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xlsm":
		return readSheet(file, opts.Sheet, read)
	default:
		return readCSV(file, opts.Delimiter, read)
	}
}

func readCSV(file string, delim rune, read func(row []string) error) error {
	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	rs := csv.NewReader(r)
	if delim != 0 {
		rs.Comma = delim
	}
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = true
	if _, err := rs.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for line := 2; ; line++ {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if err := read(row); err != nil {
			return ParseError{File: file, Line: line, Err: err}
		}
	}
	return nil
}

func readSheet(file, sheet string, read func(row []string) error) error {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		if err := read(row); err != nil {
			return ParseError{File: file, Line: i + 1, Err: err}
		}
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
