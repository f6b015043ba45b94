// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws fetches configuration documents from S3 so --config can name
// an s3://bucket/key location. Fetched documents are cached on disk and the
// cached copy is used when S3 is unreachable.
package aws
