// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/drush-go/drush/internal/cacheutil"
	"github.com/drush-go/drush/internal/log"
)

// DefaultMaxAge is how long a fetched document is served from cache before
// S3 is asked again.
const DefaultMaxAge = 15 * time.Minute

var cacheSubdirs = []string{"config", "s3"}

// Location is a parsed s3:// URL.
type Location struct {
	Bucket string
	Key    string
	Region string
}

// ParseS3URL splits s3://bucket/key[?region=r] into its parts.
func ParseS3URL(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid s3 url %q: %w", raw, err)
	}
	if u.Scheme != "s3" {
		return Location{}, fmt.Errorf("invalid s3 url %q: scheme must be s3", raw)
	}
	loc := Location{
		Bucket: u.Host,
		Key:    strings.TrimPrefix(u.Path, "/"),
		Region: u.Query().Get("region"),
	}
	if loc.Bucket == "" || loc.Key == "" {
		return Location{}, fmt.Errorf("invalid s3 url %q: bucket and key are required", raw)
	}
	return loc, nil
}

// Fetcher reads configuration documents from S3.
type Fetcher struct {
	// Client overrides the S3 client. When nil a client is built per region
	// on first use.
	Client GetObjectAPI
	Cache  *cacheutil.Store
	MaxAge time.Duration
	Opts   []Option
}

// NewFetcher returns a Fetcher backed by the default cache.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{Cache: cacheutil.Open(), MaxAge: DefaultMaxAge, Opts: opts}
}

// Fetch returns the object named by uri. A cache entry younger than MaxAge is
// returned without contacting S3. If S3 fails, any cached copy is returned
// instead of the error.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	loc, err := ParseS3URL(uri)
	if err != nil {
		return nil, err
	}

	if e, ok := f.Cache.Get(cacheSubdirs, uri, f.MaxAge); ok {
		return e.Data, nil
	}

	data, err := f.get(ctx, loc)
	if err != nil {
		if e, ok := f.Cache.Get(cacheSubdirs, uri, 0); ok {
			log.Debugf("s3 fetch failed, using cached copy: %v", err)
			return e.Data, nil
		}
		return nil, err
	}

	if err := f.Cache.Put(cacheSubdirs, uri, data); err != nil {
		log.Debugf("failed to cache %s: %v", uri, err)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, loc Location) ([]byte, error) {
	client := f.Client
	if client == nil {
		opts := f.Opts
		if loc.Region != "" {
			opts = append(append([]Option(nil), opts...), WithRegion(loc.Region))
		}
		c, err := NewS3(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		client = c
	}

	out, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	return data, nil
}
