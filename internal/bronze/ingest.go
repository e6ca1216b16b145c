// Package bronze ingests raw delimited files into the bronze layer.
//
// Bronze stores data as-is: no business logic, no cleaning, no typing. The
// only additions are lineage columns (ingestion timestamp, source file,
// ingestion-date partition key, batch ID, content checksum). Each ingestion
// batch appends a new part under its ingestion-date partition so historical
// loads remain reprocessable.
package bronze

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"lakehouse/internal/schema"
	"lakehouse/internal/store"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// Batch identifies one ingestion run. All tables ingested in the same run
// share the batch ID and timestamp.
type Batch struct {
	ID         string
	IngestedAt time.Time
}

// Date returns the ingestion-date partition key for the batch.
func (b Batch) Date() string { return b.IngestedAt.Format(schema.DateLayout) }

// Ingest loads every source file for one table into the bronze layer and
// returns the number of records written. A table with no data rows is
// skipped (returns 0, nil); a header that does not match the registered
// schema fails the table.
func Ingest(ctx context.Context, log *slog.Logger, rawDir, bronzeDir, table string, batch Batch) (int, error) {
	tab, err := schema.Lookup(table)
	if err != nil {
		return 0, err
	}

	files, err := sourceFiles(rawDir, table)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		log.Warn("no source files found, skipping table", "table", table, "raw_dir", rawDir)
		return 0, nil
	}

	switch table {
	case schema.Customers:
		return ingestFiles[schema.RawCustomer](ctx, log, tab, files, bronzeDir, batch, schema.RawCustomerFromRow)
	case schema.Products:
		return ingestFiles[schema.RawProduct](ctx, log, tab, files, bronzeDir, batch, schema.RawProductFromRow)
	case schema.Orders:
		return ingestFiles[schema.RawOrder](ctx, log, tab, files, bronzeDir, batch, schema.RawOrderFromRow)
	case schema.OrderItems:
		return ingestFiles[schema.RawOrderItem](ctx, log, tab, files, bronzeDir, batch, schema.RawOrderItemFromRow)
	default:
		return 0, errors.Errorf("no ingestion defined for table %q", table)
	}
}

// lineaged constrains raw record pointers that accept a lineage stamp.
type lineaged[T any] interface {
	*T
	SetLineage(schema.Lineage)
}

func ingestFiles[T any, PT lineaged[T]](
	ctx context.Context,
	log *slog.Logger,
	tab schema.Table,
	files []string,
	bronzeDir string,
	batch Batch,
	fromRow func([]string) T,
) (int, error) {
	total := 0
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		rows, checksum, err := readAligned(path, tab)
		if err != nil {
			return total, err
		}
		if len(rows) == 0 {
			log.Warn("no records to ingest, skipping file", "table", tab.Name, "file", path)
			continue
		}

		lin := schema.Lineage{
			IngestedAt:     batch.IngestedAt,
			SourceFile:     path,
			IngestionDate:  batch.Date(),
			BatchID:        batch.ID,
			SourceChecksum: checksum,
		}
		recs := make([]T, len(rows))
		for j, row := range rows {
			recs[j] = fromRow(row)
			PT(&recs[j]).SetLineage(lin)
		}

		part := fmt.Sprintf("part-%s-%05d", batch.ID, i)
		dir := filepath.Join(bronzeDir, tab.Name)
		if err := store.AppendPart(dir, "_ingestion_date", batch.Date(), part, recs); err != nil {
			return total, errors.Wrapf(err, "append bronze part for %s", tab.Name)
		}
		total += len(recs)
		log.Info("ingested source file", "table", tab.Name, "file", path, "rows", len(recs))
	}
	return total, nil
}

// readAligned parses one CSV file, verifies its header against the contract,
// and returns data rows re-ordered into contract column order, plus the
// file's content fingerprint.
func readAligned(path string, tab schema.Table) ([][]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read source %s", path)
	}
	checksum := fmt.Sprintf("%016x", xxh3.Hash(data))

	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.ReuseRecord = false

	header, err := r.Read()
	if err == io.EOF {
		return nil, checksum, nil
	}
	if err != nil {
		return nil, "", errors.Wrapf(err, "read header of %s", path)
	}
	for i := range header {
		header[i] = strings.TrimPrefix(strings.TrimSpace(header[i]), utf8BOM)
	}
	if err := tab.CheckHeader(header); err != nil {
		return nil, "", err
	}

	// Position of each contract column within this file's header.
	pos := make([]int, len(tab.Columns))
	for i, c := range tab.Columns {
		for j, h := range header {
			if h == c.Name {
				pos[i] = j
				break
			}
		}
	}

	r.FieldsPerRecord = len(header)
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", path)
		}
		row := make([]string, len(pos))
		for i, j := range pos {
			row[i] = rec[j]
		}
		rows = append(rows, row)
	}
	return rows, checksum, nil
}

// sourceFiles resolves the input files for a table: either a directory of
// CSVs at <rawDir>/<table>/ or a single <rawDir>/<table>.csv.
func sourceFiles(rawDir, table string) ([]string, error) {
	dir := filepath.Join(rawDir, table)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
		if err != nil {
			return nil, errors.Wrap(err, "list source files")
		}
		sort.Strings(matches)
		return matches, nil
	}
	single := filepath.Join(rawDir, table+".csv")
	if _, err := os.Stat(single); err == nil {
		return []string{single}, nil
	}
	return nil, nil
}
