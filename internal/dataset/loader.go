package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// column layout of the source CSV: city, locality, cell id, POI code, value.
const numColumns = 5

// Loader reads CellRecords from a local file or an HTTP(S) URL.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader creates a Loader for the given source.
func NewLoader(source string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{source: source, client: client}
}

// Load reads the source and returns the parsed records. Any fetch or parse
// failure is logged and yields an empty slice; the caller only ever sees the
// empty-dataset case.
func (l *Loader) Load(ctx context.Context) []CellRecord {
	records, err := l.load(ctx)
	if err != nil {
		zap.L().Error("dataset: load failed, treating as empty",
			zap.String("source", l.source),
			zap.Error(err),
		)
		return nil
	}
	return records
}

// load reads and parses the source, surfacing the failure cause.
func (l *Loader) load(ctx context.Context) ([]CellRecord, error) {
	r, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck

	records, err := Parse(r)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", l.source)
	}
	return records, nil
}

// open returns a reader over the source bytes.
func (l *Loader) open(ctx context.Context) (io.ReadCloser, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
		if err != nil {
			return nil, eris.Wrap(err, "dataset: build request")
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: fetch %s", l.source)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("dataset: fetch %s returned status %d", l.source, resp.StatusCode)
		}
		return resp.Body, nil
	}

	f, err := os.Open(l.source)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", l.source)
	}
	return f, nil
}

// Parse reads CSV rows from r. The first row is treated as a header and
// skipped. Rows with an empty cell id or a value that does not parse as a
// finite number are dropped; rows with fewer than five columns are dropped
// for the same reason.
func Parse(r io.Reader) ([]CellRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows, drop rules apply below
	reader.LazyQuotes = true

	var (
		records []CellRecord
		first   = true
		dropped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "read row")
		}

		if first {
			first = false
			continue
		}
		if isBlank(row) {
			continue
		}

		rec, ok := parseRow(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		zap.L().Debug("dataset: dropped malformed rows", zap.Int("dropped", dropped))
	}
	return records, nil
}

// parseRow converts one CSV row into a CellRecord, reporting whether the row
// passes the drop rules.
func parseRow(row []string) (CellRecord, bool) {
	if len(row) < numColumns {
		return CellRecord{}, false
	}

	cellID := strings.TrimSpace(row[2])
	if cellID == "" {
		return CellRecord{}, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return CellRecord{}, false
	}

	return CellRecord{
		City:     strings.TrimSpace(row[0]),
		Locality: strings.TrimSpace(row[1]),
		CellID:   cellID,
		POICode:  strings.TrimSpace(row[3]),
		Value:    value,
	}, true
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
