/*
Copyright © 2026 the plume authors.
This file is part of plume.

plume is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plume is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plume.  If not, see <http://www.gnu.org/licenses/>.
*/

package cloud

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"
)

// ExpandShp returns path and, if path has the extension ".shp", the paths
// of the associated ".dbf", ".shx", and ".prj" files.
func ExpandShp(path string) []string {
	o := []string{path}
	if filepath.Ext(path) != ".shp" {
		return o
	}
	base := strings.TrimSuffix(path, ".shp")
	for _, ext := range []string{".dbf", ".shx", ".prj"} {
		o = append(o, base+ext)
	}
	return o
}

// Upload copies the local file to the blob path dst, retrying with
// exponential backoff if the copy fails.
func Upload(ctx context.Context, src, dst string, log logrus.FieldLogger) error {
	bucketName, key, err := SplitPath(dst)
	if err != nil {
		return err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return err
	}
	return retry(ctx, func() error { return writeBlob(ctx, bucket, key, src) }, log)
}

func writeBlob(ctx context.Context, bucket *blob.Bucket, key, src string) error {
	r, err := os.Open(src)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("cloud: opening file '%s' for upload: %v", src, err))
	}
	defer r.Close()
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("cloud: creating writer for blob %s: %v", key, err)
	}
	if _, err = io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("cloud: copying blob %s: %v", key, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("cloud: writing blob %s: %v", key, err)
	}
	return nil
}

// Fetch returns a local path for path. If path is an existing local file
// it is returned unchanged. HTTP(S) URLs and blob paths are downloaded to a
// temporary directory, along with any associated shapefile files, and the
// local path of the downloaded file is returned.
func Fetch(ctx context.Context, path string, log logrus.FieldLogger) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	var get func(src string, w io.Writer) error
	switch {
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		get = func(src string, w io.Writer) error { return readHTTP(ctx, src, w) }
	case IsBlob(path):
		get = func(src string, w io.Writer) error { return readBlob(ctx, src, w) }
	default:
		return path, nil
	}
	dir, err := ioutil.TempDir("", "plume")
	if err != nil {
		return "", fmt.Errorf("cloud: creating download directory: %v", err)
	}
	files := ExpandShp(path)
	for i, src := range files {
		dst := filepath.Join(dir, filepath.Base(src))
		err := retry(ctx, func() error {
			w, err := os.Create(dst)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("cloud: creating download file: %v", err))
			}
			defer w.Close()
			return get(src, w)
		}, log)
		if err != nil && i == 0 {
			return "", err
		}
		// Missing .prj files, for example, are not fatal.
		if err != nil {
			log.WithField("file", src).Warn(err)
		}
	}
	return filepath.Join(dir, filepath.Base(files[0])), nil
}

func readBlob(ctx context.Context, path string, w io.Writer) error {
	bucketName, key, err := SplitPath(path)
	if err != nil {
		return backoff.Permanent(err)
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return err
	}
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("cloud: reading blob %s: %v", path, err))
	}
	defer r.Close()
	if _, err = io.Copy(w, r); err != nil {
		return fmt.Errorf("cloud: reading blob %s: %v", path, err)
	}
	return nil
}

func readHTTP(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("cloud: downloading %s: %v", url, err))
	}
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("cloud: downloading %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("cloud: downloading %s: %s", url, resp.Status)
		if resp.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	if _, err = io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("cloud: downloading %s: %v", url, err)
	}
	return nil
}

// maxElapsedTime is the longest that a transfer is retried for.
const maxElapsedTime = 2 * time.Minute

func retry(ctx context.Context, f func() error, log logrus.FieldLogger) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsedTime
	return backoff.RetryNotify(f, backoff.WithContext(b, ctx),
		func(err error, d time.Duration) {
			log.WithField("retry_in", d).Warn(err)
		},
	)
}
