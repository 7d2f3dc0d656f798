// Package fetch downloads book files from a Firebase / Cloud Storage bucket.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var (
	// ErrNotFound is returned when the bucket has no such object.
	ErrNotFound = errors.New("fetch: object not found")

	// ErrEmptyObject is returned for an empty object name.
	ErrEmptyObject = errors.New("fetch: empty object name")
)

// Storage downloads objects from one bucket. Firebase Storage buckets are
// Cloud Storage buckets, so objects are read anonymously through the Cloud
// Storage client. Object names that are already http(s) URLs are downloaded
// with Client instead.
type Storage struct {
	// Endpoint overrides the Cloud Storage API endpoint when set.
	Endpoint string
	Bucket   string
	Client   *http.Client
	Log      *log.Logger
}

// New returns a Storage for bucket. An empty endpoint uses the Cloud
// Storage default.
func New(endpoint, bucket string) *Storage {
	return &Storage{
		Endpoint: endpoint,
		Bucket:   bucket,
		Client:   http.DefaultClient,
	}
}

func isURL(object string) bool {
	return strings.HasPrefix(object, "http://") || strings.HasPrefix(object, "https://")
}

// Fetch downloads object to dst. The body is written to a temporary file in
// dst's directory and renamed into place once complete. Failed reads are
// not retried.
func (s *Storage) Fetch(ctx context.Context, object, dst string) error {
	if object == "" {
		return ErrEmptyObject
	}

	var (
		body io.ReadCloser
		err  error
	)
	if isURL(object) {
		body, err = s.openURL(ctx, object)
	} else {
		body, err = s.openObject(ctx, object)
	}
	if err != nil {
		return err
	}
	defer body.Close()

	n, err := writeFile(dst, body)
	if err != nil {
		return err
	}
	if s.Log != nil {
		s.Log.Printf("fetched %s (%d bytes)", object, n)
	}
	return nil
}

// objectReader closes the client along with the object it reads.
type objectReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *objectReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *Storage) openObject(ctx context.Context, object string) (io.ReadCloser, error) {
	if s.Bucket == "" {
		return nil, fmt.Errorf("fetch: no bucket configured for %q", object)
	}

	opts := []option.ClientOption{option.WithoutAuthentication()}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	if s.Client != nil && s.Client != http.DefaultClient {
		opts = append(opts, option.WithHTTPClient(s.Client))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("fetch: failed to create storage client: %w", err)
	}

	obj := client.Bucket(s.Bucket).
		Object(strings.TrimLeft(object, "/")).
		Retryer(storage.WithPolicy(storage.RetryNever))
	r, err := obj.NewReader(ctx)
	if err != nil {
		client.Close()
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, object)
		}
		return nil, fmt.Errorf("fetch: %s: %w", object, err)
	}
	return &objectReader{Reader: r, client: client}, nil
}

func (s *Storage) openURL(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: failed to build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: %s: unexpected status %s", u, resp.Status)
	}
	return resp.Body, nil
}

func writeFile(dst string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("fetch: failed to write %s: %w", dst, err)
	}
	return n, os.Rename(tmp.Name(), dst)
}
