package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher opens data files that live on disk, behind http(s) or in s3.
type Fetcher struct {
	client *http.Client
	region string
}

func New(timeout time.Duration) *Fetcher {
	rC := retryablehttp.NewClient()
	rC.Logger = nil
	rC.RetryMax = 3
	client := rC.StandardClient()
	client.Timeout = timeout

	return &Fetcher{
		client: client,
		region: os.Getenv("AWS_REGION"),
	}
}

// IsRemote reports whether location must be downloaded rather than opened from disk.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://") ||
		strings.HasPrefix(location, "s3://")
}

// Open returns the content at location. When location is a zip archive, entry names the
// member to read; an empty entry picks the first file with the extension ext.
func (f *Fetcher) Open(ctx context.Context, location, entry, ext string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		rc, err = f.openHTTP(ctx, location)
	case strings.HasPrefix(location, "s3://"):
		rc, err = f.openS3(ctx, location)
	default:
		rc, err = os.Open(location)
	}
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(path.Ext(location), ".zip") {
		return rc, nil
	}
	defer rc.Close()

	return unzipEntry(rc, entry, ext)
}

func (f *Fetcher) openHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not download %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("could not download %s: status %d", location, resp.StatusCode)
	}
	return resp.Body, nil
}

func (f *Fetcher) openS3(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("malformed s3 location: %s", location)
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(f.region),
	})
	if err != nil {
		return nil, err
	}
	downloader := s3manager.NewDownloader(sess)

	buf := aws.NewWriteAtBuffer([]byte{})
	_, err = downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("could not download %s: %w", location, err)
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func unzipEntry(r io.Reader, entry, ext string) (io.ReadCloser, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read zip archive: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("could not unzip archive: %w", err)
	}

	for _, zf := range zipReader.File {
		if entry != "" && zf.Name != entry {
			continue
		}
		if entry == "" && !strings.EqualFold(path.Ext(zf.Name), ext) {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open %s from archive: %w", zf.Name, err)
		}
		return rc, nil
	}

	if entry != "" {
		return nil, fmt.Errorf("%s not found in archive", entry)
	}
	return nil, fmt.Errorf("no %s file found in archive", ext)
}
