package fastx

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const s3Scheme = "s3://"

// isS3Path reports whether path names an object in S3 rather than the local
// filesystem. This is a domain-stack enrichment over spec §6's "a single
// FASTQ/FASTA file" input contract: long-read runs are commonly deposited
// directly in S3, and aws-sdk-go is already part of the dependency stack
// this repo's teacher carries but never exercises for plain file IO.
func isS3Path(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// openS3 downloads the full object into memory and returns a reader over
// it. Long-read FASTQ inputs for this tool are always subsampled down to a
// bounded record count before heavy processing (spec §4.3), so buffering
// the raw (possibly compressed) object is acceptable; it is never streamed
// record-by-record directly from S3.
func openS3(path string) (io.Reader, error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return nil, err
	}

	sess, err := session.NewSession()
	if err != nil {
		return nil, fmt.Errorf("fastx: creating AWS session: %w", err)
	}

	buf := aws.NewWriteAtBuffer(nil)
	downloader := s3manager.NewDownloader(sess)
	if _, err := downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("fastx: downloading %s: %w", path, err)
	}

	data := buf.Bytes()
	if len(data) == 0 {
		return nil, fmt.Errorf("fastx: %s is empty", path)
	}
	return bytes.NewReader(data), nil
}

func splitS3Path(path string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(path, s3Scheme)
	i := strings.IndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return "", "", fmt.Errorf("fastx: invalid S3 path: %s", path)
	}
	return rest[:i], rest[i+1:], nil
}
