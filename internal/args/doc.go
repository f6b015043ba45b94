// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package args pulls the handful of preflight-relevant options out of the raw
// command line before any command grammar exists. Recognized:
//   - @alias as the first positional token (site selector)
//   - --root / -r, --config, --include, --drush-coverage (valued)
//   - --local (boolean)
//
// Everything else is left for the dispatcher's full parser.
package args
