package dash

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

const (
	SourceCSV    = "csv"
	SourceXLSX   = "xlsx"
	SourceSQLite = "sqlite"
)

// Table is the content of a data source. The first column of every row
// gives the labels, the selected columns give the series.
type Table struct {
	Labels []string
	Names  []string
	Series [][]float64
}

// Rows gives the selected values row by row instead of column by column,
// as expected by pie and bubble charts.
func (t Table) Rows() [][]float64 {
	var rows [][]float64
	for i := range t.Labels {
		var row []float64
		for _, s := range t.Series {
			if i < len(s) {
				row = append(row, s[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

type DataSource interface {
	Load(context.Context) (Table, error)
}

type Limit struct {
	Offset int
	Count  int
}

func (lim Limit) apply(rows [][]string) [][]string {
	z := len(rows)
	if lim.Offset < 0 {
		lim.Offset = z + lim.Offset
	}
	if lim.Offset > 0 && lim.Offset < z {
		rows = rows[lim.Offset:]
	}
	if lim.Count > 0 && lim.Count < len(rows) {
		rows = rows[:lim.Count]
	}
	return rows
}

// Source is the description of a data source found in a definition file.
type Source struct {
	Type      string
	Path      string
	Sheet     string
	Query     string
	Delimiter string
	Label     int
	Columns   []int
	Sum       bool
	Limit     `mapstructure:",squash"`
}

func (s Source) selector() Selector {
	if len(s.Columns) == 0 {
		return SelectFrom(s.Label + 1)
	}
	if s.Sum {
		return SelectSum(s.Columns)
	}
	return SelectMulti(s.Columns)
}

func (s Source) kind() string {
	if s.Type != "" {
		return strings.ToLower(s.Type)
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".xlsx", ".xlsm":
		return SourceXLSX
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	default:
		return SourceCSV
	}
}

// Open selects the data source matching the type of the source or, when
// not given, the extension of its path.
func (s Source) Open() (DataSource, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("source: path is missing")
	}
	shape := tableShape{
		Label:    s.Label,
		Selector: s.selector(),
		Limit:    s.Limit,
	}
	switch s.kind() {
	case SourceCSV:
		f := CSVFile{
			Path:      s.Path,
			tableShape: shape,
		}
		if s.Delimiter != "" {
			f.Delimiter = []rune(s.Delimiter)[0]
		}
		return f, nil
	case SourceXLSX:
		return XLSXFile{
			Path:      s.Path,
			Sheet:     s.Sheet,
			tableShape: shape,
		}, nil
	case SourceSQLite:
		if s.Query == "" {
			return nil, fmt.Errorf("source %s: query is missing", s.Path)
		}
		return SQLiteQuery{
			Path:      s.Path,
			Query:     s.Query,
			tableShape: shape,
		}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported source type", s.Type)
	}
}

type tableShape struct {
	Label    int
	Selector Selector
	Limit
}

// table builds a Table from rows of cells. The first row is the header
// giving the names of the series.
func (t tableShape) table(rows [][]string) (Table, error) {
	var tab Table
	if len(rows) == 0 {
		return tab, fmt.Errorf("source is empty")
	}
	tab.Names = t.Selector.Names(rows[0])
	for i, row := range t.Limit.apply(rows[1:]) {
		if isBlank(row) {
			continue
		}
		for len(row) < len(rows[0]) {
			row = append(row, "")
		}
		if t.Label < 0 || t.Label >= len(row) {
			return tab, fmt.Errorf("row %d: %w", i+1, ErrIndex)
		}
		values, err := t.Selector.Select(row)
		if err != nil {
			return tab, fmt.Errorf("row %d: %w", i+1, err)
		}
		if tab.Series == nil {
			tab.Series = make([][]float64, len(values))
		}
		if len(values) != len(tab.Series) {
			return tab, fmt.Errorf("row %d: expected %d values, got %d", i+1, len(tab.Series), len(values))
		}
		tab.Labels = append(tab.Labels, strings.TrimSpace(row[t.Label]))
		for j, v := range values {
			tab.Series[j] = append(tab.Series[j], v)
		}
	}
	return tab, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// CSVFile reads a local file or a file served over http.
type CSVFile struct {
	Path      string
	Delimiter rune
	tableShape
}

func (f CSVFile) Load(ctx context.Context) (Table, error) {
	r, err := readFrom(ctx, f.Path)
	if err != nil {
		return Table{}, err
	}
	defer r.Close()

	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	if f.Delimiter != 0 {
		rs.Comma = f.Delimiter
	}
	var rows [][]string
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Table{}, fmt.Errorf("%s: %w", f.Path, err)
		}
		rows = append(rows, row)
	}
	tab, err := f.table(rows)
	if err != nil {
		return tab, fmt.Errorf("%s: %w", f.Path, err)
	}
	return tab, nil
}

func readFrom(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("%s: request does not end with success result code (%d)", location, res.StatusCode)
		}
		return res.Body, nil
	case "", "file":
		if u.Scheme == "" {
			return os.Open(location)
		}
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("%s: unsupported scheme", u.Scheme)
	}
}

// XLSXFile reads a sheet of a workbook, the first sheet when none is
// given.
type XLSXFile struct {
	Path  string
	Sheet string
	tableShape
}

func (f XLSXFile) Load(_ context.Context) (Table, error) {
	wb, err := excelize.OpenFile(f.Path)
	if err != nil {
		return Table{}, err
	}
	defer wb.Close()

	sheet := f.Sheet
	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	tab, err := f.table(rows)
	if err != nil {
		return tab, fmt.Errorf("%s[%s]: %w", f.Path, sheet, err)
	}
	return tab, nil
}

// SQLiteQuery runs a query on a database. The names of the columns of the
// result set give the header of the table.
type SQLiteQuery struct {
	Path  string
	Query string
	Args  []any
	tableShape
}

func (q SQLiteQuery) Load(ctx context.Context) (Table, error) {
	db, err := sql.Open("sqlite", q.Path)
	if err != nil {
		return Table{}, fmt.Errorf("error when opening database: %w", err)
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx, q.Query, q.Args...)
	if err != nil {
		return Table{}, fmt.Errorf("%s: query failed: %w", q.Path, err)
	}
	defer rs.Close()

	header, err := rs.Columns()
	if err != nil {
		return Table{}, err
	}
	rows := [][]string{header}
	for rs.Next() {
		var (
			values = make([]any, len(header))
			ptrs   = make([]any, len(header))
		)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return Table{}, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			if row[i], err = cellString(v); err != nil {
				return Table{}, fmt.Errorf("%s: column %s: %w", q.Path, header[i], err)
			}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return Table{}, err
	}
	tab, err := q.table(rows)
	if err != nil {
		return tab, fmt.Errorf("%s: %w", q.Path, err)
	}
	return tab, nil
}

func cellString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case time.Time:
		return v.UTC().Format(time.RFC3339), nil
	case float64:
		if math.IsNaN(v) {
			return "", nil
		}
	}
	return cast.ToStringE(v)
}
