// Package publish writes rendered documents to their destination.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// ContentType is set on every published object.
const ContentType = "text/html; charset=utf-8"

// Sink receives rendered HTML. name is a slash-separated relative path,
// usually the source file name with an .html extension.
type Sink interface {
	Publish(ctx context.Context, name, html string) error
}

// Writer publishes to an io.Writer, one document after another.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a sink that writes each document followed by a newline.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Stdout returns a sink writing to os.Stdout.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Publish implements Sink. The name is ignored.
func (s *Writer) Publish(_ context.Context, _ string, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, html+"\n"); err != nil {
		return errors.New("H031").Wrap(err)
	}
	return nil
}

// Dir publishes documents as files below a root directory.
type Dir struct {
	root string
}

// NewDir returns a sink writing below root. The directory is created on
// first publish.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the target directory.
func (d *Dir) Root() string { return d.root }

// Publish implements Sink.
func (d *Dir) Publish(_ context.Context, name, html string) error {
	rel, err := cleanName(name)
	if err != nil {
		return err
	}
	dst := filepath.Join(d.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.New("H031").WithDetail(dst).Wrap(err)
	}
	if err := os.WriteFile(dst, []byte(html), 0644); err != nil {
		return errors.New("H031").WithDetail(dst).Wrap(err)
	}
	return nil
}

// S3API is the subset of the S3 client used by the S3 sink.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 publishes documents as objects in a bucket.
type S3 struct {
	client S3API
	bucket string
	prefix string
}

// NewS3 returns a sink writing to bucket under prefix.
func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key used for name.
func (s *S3) Key(name string) (string, error) {
	rel, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return rel, nil
	}
	return s.prefix + "/" + rel, nil
}

// Publish implements Sink.
func (s *S3) Publish(ctx context.Context, name, html string) error {
	key, err := s.Key(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(html),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return errors.New("H031").
			WithDetail(fmt.Sprintf("s3://%s/%s", s.bucket, key)).
			Wrap(err)
	}
	return nil
}

// Options configure Open.
type Options struct {
	// Region overrides the AWS region for S3 targets.
	Region string

	// S3Client replaces the client built from the default AWS config.
	S3Client S3API
}

// Open returns the sink for target: "-" (or empty) for stdout, s3://bucket/prefix
// for S3, file://dir or a plain path for a directory.
func Open(ctx context.Context, target string, opts Options) (Sink, error) {
	switch {
	case target == "" || target == "-":
		return Stdout(), nil
	case strings.HasPrefix(target, "s3://"):
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(target, "s3://"), "/")
		if bucket == "" {
			return nil, errors.New("H023").
				WithDetailf("missing bucket in %q", target).
				WithSuggestion("Use s3://bucket/prefix")
		}
		client := opts.S3Client
		if client == nil {
			var loadOpts []func(*config.LoadOptions) error
			if opts.Region != "" {
				loadOpts = append(loadOpts, config.WithRegion(opts.Region))
			}
			cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
			if err != nil {
				return nil, errors.New("H023").WithDetail("loading AWS configuration").Wrap(err)
			}
			client = s3.NewFromConfig(cfg)
		}
		return NewS3(client, bucket, prefix), nil
	case strings.HasPrefix(target, "file://"):
		dir := strings.TrimPrefix(target, "file://")
		if dir == "" {
			return nil, errors.New("H023").WithDetailf("missing directory in %q", target)
		}
		return NewDir(dir), nil
	case strings.Contains(target, "://"):
		return nil, errors.New("H023").
			WithDetailf("unsupported scheme in %q", target).
			WithSuggestion("Use -, a directory, file://dir or s3://bucket/prefix")
	default:
		return NewDir(target), nil
	}
}

// HTMLName maps a source path to the published name: its base name with
// the extension replaced by .html.
func HTMLName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// cleanName rejects names that would escape the sink's root.
func cleanName(name string) (string, error) {
	rel := path.Clean("/" + filepath.ToSlash(name))[1:]
	if rel == "" || rel == "." {
		return "", errors.New("H031").WithDetailf("invalid document name %q", name)
	}
	return rel, nil
}
