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

package plumeutil

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/cloud"
	"github.com/sirupsen/logrus"
)

type uploader struct {
	// files is a set of file path pairs. The first of each pair
	// is a local file path and the second is a blob storage
	// path where it should be uploaded to.
	files [][2]string
	err   error
	dir   string
}

// maybeUpload checks whether the given output file path refers to
// a blob storage location. If it does, then a temporary file location
// is returned. The file will then be uploaded to blob storage when
// the uploadOutput method is run.
func (u *uploader) maybeUpload(path string) string {
	if u.err != nil {
		return ""
	}
	if !cloud.IsBlob(path) {
		return path
	}
	if u.dir == "" {
		u.dir, u.err = ioutil.TempDir("", "plume")
		if u.err != nil {
			return ""
		}
	}
	files := cloud.ExpandShp(path)
	for _, f := range files {
		u.files = append(u.files, [2]string{
			filepath.Join(u.dir, filepath.Base(f)),
			f,
		})
	}
	return filepath.Join(u.dir, filepath.Base(files[0]))
}

// uploadOutput copies the temporary files to blob storage. Shapefiles are
// not written with a .prj file, so missing .prj files are skipped.
func (u *uploader) uploadOutput(ctx context.Context, log logrus.FieldLogger) error {
	if u.err != nil {
		return u.err
	}
	for _, files := range u.files {
		if filepath.Ext(files[0]) == ".prj" {
			if _, err := os.Stat(files[0]); err != nil {
				continue
			}
		}
		log.WithField("file", files[1]).Info("uploading")
		if err := cloud.Upload(ctx, files[0], files[1], log); err != nil {
			return err
		}
	}
	return nil
}
