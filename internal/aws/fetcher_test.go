// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drush-go/drush/internal/cacheutil"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	calls   int
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Location
		wantErr bool
	}{
		{name: "simple", raw: "s3://bucket/drush.yml", want: Location{Bucket: "bucket", Key: "drush.yml"}},
		{name: "nested key", raw: "s3://bucket/sites/prod/drush.yml", want: Location{Bucket: "bucket", Key: "sites/prod/drush.yml"}},
		{name: "region", raw: "s3://bucket/drush.yml?region=eu-west-1", want: Location{Bucket: "bucket", Key: "drush.yml", Region: "eu-west-1"}},
		{name: "wrong scheme", raw: "gs://bucket/drush.yml", wantErr: true},
		{name: "no key", raw: "s3://bucket/", wantErr: true},
		{name: "no bucket", raw: "s3:///drush.yml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseS3URL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{"bucket/drush.yml": "options:\n  uri: http://remote\n"}}
	f := &Fetcher{
		Client: s3,
		Cache:  &cacheutil.Store{Base: t.TempDir(), Enabled: true},
		MaxAge: time.Hour,
	}
	ctx := context.Background()

	data, err := f.Fetch(ctx, "s3://bucket/drush.yml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://remote")
	assert.Equal(t, 1, s3.calls)

	// Fresh cache entry, no second call.
	_, err = f.Fetch(ctx, "s3://bucket/drush.yml")
	require.NoError(t, err)
	assert.Equal(t, 1, s3.calls)

	_, err = f.Fetch(ctx, "s3://bucket/missing.yml")
	assert.ErrorContains(t, err, "NoSuchKey")

	_, err = f.Fetch(ctx, "not-a-url")
	assert.Error(t, err)
}

func TestFetcher_StaleFallback(t *testing.T) {
	cache := &cacheutil.Store{Base: t.TempDir(), Enabled: true}
	require.NoError(t, cache.Put(cacheSubdirs, "s3://bucket/drush.yml", []byte("cached: true\n")))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(cache.Path(cacheSubdirs, "s3://bucket/drush.yml"), old, old))

	s3 := &fakeS3{err: errors.New("connection refused")}
	f := &Fetcher{Client: s3, Cache: cache, MaxAge: time.Minute}

	data, err := f.Fetch(context.Background(), "s3://bucket/drush.yml")
	require.NoError(t, err)
	assert.Equal(t, "cached: true\n", string(data))
	assert.Equal(t, 1, s3.calls)
}

func TestFetcher_NoCache(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{"bucket/a.yml": "a: 1\n"}}
	f := &Fetcher{Client: s3}

	_, err := f.Fetch(context.Background(), "s3://bucket/a.yml")
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "s3://bucket/a.yml")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.calls)
}

func TestLoadAWSConfig_Options(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")
	t.Setenv("AWS_REGION", "")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)

	var o options
	WithProfile("ops")(&o)
	WithRegion("eu-central-1")(&o)
	assert.Equal(t, options{profile: "ops", region: "eu-central-1"}, o)
}
