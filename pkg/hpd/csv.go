package hpd

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/hpdgraph/pkg/errors"
)

// table reads a CSV file with a header row, addressing fields by column name.
type table struct {
	r    *csv.Reader
	cols map[string]int
	row  int
}

func newTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeMalformedDataset, "missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDataset, err, "read header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		// Socrata exports occasionally start with a UTF-8 BOM.
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, errors.New(errors.ErrCodeMalformedDataset, "missing column %q", name)
		}
	}
	return &table{r: cr, cols: cols, row: 1}, nil
}

// next returns the following row or io.EOF.
func (t *table) next() (row, error) {
	fields, err := t.r.Read()
	if err != nil {
		if err == io.EOF {
			return row{}, io.EOF
		}
		return row{}, errors.Wrap(errors.ErrCodeMalformedDataset, err, "read row %d", t.row+1)
	}
	t.row++
	return row{fields: fields, cols: t.cols, num: t.row}, nil
}

type row struct {
	fields []string
	cols   map[string]int
	num    int
}

// str returns the trimmed value of the named column, or "" when absent.
func (r row) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) uint32(col string) (uint32, error) {
	n, err := strconv.ParseUint(r.str(col), 10, 32)
	if err != nil {
		return 0, r.malformed(col, err)
	}
	return uint32(n), nil
}

func (r row) uint16(col string) (uint16, error) {
	n, err := strconv.ParseUint(r.str(col), 10, 16)
	if err != nil {
		return 0, r.malformed(col, err)
	}
	return uint16(n), nil
}

func (r row) uint8(col string) (uint8, error) {
	n, err := strconv.ParseUint(r.str(col), 10, 8)
	if err != nil {
		return 0, r.malformed(col, err)
	}
	return uint8(n), nil
}

// optUint32 parses a column that may be empty.
func (r row) optUint32(col string) (uint32, bool, error) {
	if r.str(col) == "" {
		return 0, false, nil
	}
	n, err := r.uint32(col)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (r row) malformed(col string, cause error) error {
	return errors.Wrap(errors.ErrCodeMalformedDataset, cause, "row %d: column %s", r.num, col)
}
