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

// Package cloud reads and writes files in blob storage.
package cloud

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/gcsblob"
	"gocloud.dev/blob/s3blob"
	"gocloud.dev/gcp"
)

// IsBlob returns whether path refers to blob storage, i.e. whether it
// starts with 'gs://', 's3://', or 'file://'.
func IsBlob(path string) bool {
	for _, p := range []string{"gs://", "s3://", "file://"} {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// SplitPath splits a blob path such as 'gs://bucket/dir/file.shp' into
// the bucket name ('gs://bucket') and the key ('dir/file.shp').
func SplitPath(path string) (bucketName, key string, err error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", "", fmt.Errorf("cloud: parsing blob path '%s': %v", path, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("cloud: invalid blob path '%s'", path)
	}
	return u.Scheme + "://" + u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// which must be in the format 'provider://name'. Only the host part of
// bucketName is used.
// Accepted providers are "file" for a directory on the local filesystem,
// "gs" for Google Cloud Storage, and "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("cloud: opening bucket: %v", err)
	}
	switch u.Scheme {
	case "file":
		return fileblob.OpenBucket(u.Hostname(), nil)
	case "gs":
		return gsBucket(ctx, u.Hostname())
	case "s3":
		return s3Bucket(ctx, u.Hostname())
	default:
		return nil, fmt.Errorf("cloud: opening bucket: invalid provider '%s'", u.Scheme)
	}
}

// gsBucket uses the application default credentials.
func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloud: finding Google Cloud credentials: %v", err)
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, fmt.Errorf("cloud: creating Google Cloud client: %v", err)
	}
	return gcsblob.OpenBucket(ctx, c, name, nil)
}

// s3Bucket reads credentials from the AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY environment variables. The region is AWS_REGION,
// or us-east-2 if it is not set.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	s, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	})
	if err != nil {
		return nil, fmt.Errorf("cloud: creating AWS session: %v", err)
	}
	return s3blob.OpenBucket(ctx, s, name, nil)
}
