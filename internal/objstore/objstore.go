// Package objstore stages raw source files into object storage before
// ingestion. The bucket is addressed by URL so local runs (file://) and
// cloud runs (s3://, gs://) share one code path.
package objstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// Uploader copies files into one bucket under a fixed key prefix.
type Uploader struct {
	bucket *blob.Bucket
	prefix string
}

// Open dials the bucket at the given URL. The returned close function
// releases the bucket.
func Open(ctx context.Context, bucketURL, prefix string) (*Uploader, func() error, error) {
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}
	return &Uploader{bucket: b, prefix: prefix}, b.Close, nil
}

// UploadFile writes one local file to <prefix>/<batch>/<basename> and
// returns the object key.
func (u *Uploader) UploadFile(ctx context.Context, localPath, batch string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", localPath)
	}
	defer f.Close()

	key := path.Join(u.prefix, batch, filepath.Base(localPath))
	w, err := u.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "text/csv"})
	if err != nil {
		return "", errors.Wrapf(err, "create object %s", key)
	}
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", errors.Wrapf(err, "write object %s", key)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "close object %s", key)
	}
	return key, nil
}

// UploadDir uploads every CSV under dir (recursively) and returns the
// object keys in upload order.
func (u *Uploader) UploadDir(ctx context.Context, log *slog.Logger, dir, batch string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".csv" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", dir)
	}
	sort.Strings(files)

	keys := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return keys, err
		}
		key, err := u.UploadFile(ctx, f, batch)
		if err != nil {
			return keys, err
		}
		log.Info("uploaded source file", "file", f, "key", key)
		keys = append(keys, key)
	}
	return keys, nil
}
