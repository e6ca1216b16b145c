// Package store reads and writes pipeline datasets as snappy-compressed
// parquet. A dataset is a directory of part files, optionally split into
// partition subdirectories (hive-style "key=value" names).
//
// Two write disciplines exist, matching the layer ownership rules:
//
//   - Overwrite (silver, gold): the new dataset is staged in a temporary
//     sibling directory and renamed over the target, so a failed run never
//     leaves a mix of old and new parts behind.
//   - Append (bronze): each ingestion batch adds one part file under its
//     ingestion-date partition; prior batches are never touched.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

const partExt = ".parquet"

// WriteTable replaces the dataset at dir with rows, atomically. An empty rows
// slice still produces the directory with a single empty part, so downstream
// readers can distinguish "built with zero rows" from "never built".
func WriteTable[T any](dir string, rows []T) error {
	tmp := dir + ".staging"
	if err := os.RemoveAll(tmp); err != nil {
		return errors.Wrap(err, "clear staging dir")
	}
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return errors.Wrap(err, "create staging dir")
	}
	if err := writePart(filepath.Join(tmp, "part-00000"+partExt), rows); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	return commit(tmp, dir)
}

// WritePartitioned replaces the dataset at dir with rows split into
// "key=value" partition subdirectories. Partition values are derived per row;
// rows within a partition keep their input order.
func WritePartitioned[T any](dir, key string, rows []T, valueOf func(T) string) error {
	tmp := dir + ".staging"
	if err := os.RemoveAll(tmp); err != nil {
		return errors.Wrap(err, "clear staging dir")
	}
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return errors.Wrap(err, "create staging dir")
	}

	groups := make(map[string][]T)
	var order []string
	for _, r := range rows {
		v := valueOf(r)
		if _, ok := groups[v]; !ok {
			order = append(order, v)
		}
		groups[v] = append(groups[v], r)
	}
	sort.Strings(order)

	for _, v := range order {
		pdir := filepath.Join(tmp, fmt.Sprintf("%s=%s", key, v))
		if err := os.MkdirAll(pdir, 0o755); err != nil {
			os.RemoveAll(tmp)
			return errors.Wrap(err, "create partition dir")
		}
		if err := writePart(filepath.Join(pdir, "part-00000"+partExt), groups[v]); err != nil {
			os.RemoveAll(tmp)
			return err
		}
	}
	return commit(tmp, dir)
}

// AppendPart adds one part file for an ingestion batch under the given
// partition of dir. Existing parts are left alone.
func AppendPart[T any](dir, key, value, part string, rows []T) error {
	pdir := filepath.Join(dir, fmt.Sprintf("%s=%s", key, value))
	if err := os.MkdirAll(pdir, 0o755); err != nil {
		return errors.Wrap(err, "create partition dir")
	}
	return writePart(filepath.Join(pdir, part+partExt), rows)
}

// ReadTable reads every part file under dir (including partition
// subdirectories) into one slice. Parts are read in lexical path order so the
// result is deterministic for a given dataset layout.
func ReadTable[T any](dir string) ([]T, error) {
	var parts []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, partExt) {
			parts = append(parts, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk dataset %s", dir)
	}
	sort.Strings(parts)

	var out []T
	for _, p := range parts {
		rows, err := parquet.ReadFile[T](p)
		if err != nil {
			return nil, errors.Wrapf(err, "read part %s", p)
		}
		out = append(out, rows...)
	}
	return out, nil
}

// Exists reports whether a dataset directory is present.
func Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

func writePart[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create part file")
	}
	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			f.Close()
			return errors.Wrapf(err, "write part %s", path)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return errors.Wrapf(err, "close part %s", path)
	}
	return errors.Wrap(f.Close(), "close part file")
}

// commit swaps the staged directory into place. The rename is the commit
// point: before it the old dataset is intact, after it only the new one
// exists.
func commit(tmp, dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		os.RemoveAll(tmp)
		return errors.Wrap(err, "remove previous dataset")
	}
	if err := os.Rename(tmp, dir); err != nil {
		return errors.Wrap(err, "commit dataset")
	}
	return nil
}
