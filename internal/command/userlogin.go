// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/hkdf"

	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
)

const loginKeyInfo = "drush user:login"

// LoginRequest is what a one-time login link is signed over.
type LoginRequest struct {
	BaseURI   string
	UID       int
	Name      string
	Timestamp int64
	Redirect  string
}

// LoginURL returns a one-time login link for r. The signing key is derived
// from salt with HKDF-SHA256 and the hash is an HMAC-SHA256 over the
// timestamp, uid and name, base64url encoded without padding.
func LoginURL(salt string, r LoginRequest) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("settings.hash_salt is not configured")
	}

	signingKey := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(salt), nil, []byte(loginKeyInfo)), signingKey); err != nil {
		return "", fmt.Errorf("failed to derive login key: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	fmt.Fprintf(mac, "%d:%d:%s", r.Timestamp, r.UID, r.Name)
	hash := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	base := r.BaseURI
	if base == "" || base == DefaultURI {
		base = "http://" + DefaultURI
	} else if !strings.Contains(base, "://") {
		base = "http://" + base
	}

	link := fmt.Sprintf("%s/user/reset/%d/%d/%s/login", strings.TrimSuffix(base, "/"), r.UID, r.Timestamp, hash)
	if r.Redirect != "" {
		link += "?destination=" + url.QueryEscape(r.Redirect)
	}
	return link, nil
}

func userLoginCommandAction(s *settings) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		m := GetMeta(cmd)
		log.Debugf("Executing action for %v", m.Args)

		if _, err := m.RequireRoot("user:login"); err != nil {
			return err
		}

		uid, err := strconv.Atoi(cmd.String("uid"))
		if err != nil || uid < 0 {
			return fmt.Errorf("--uid must be a non-negative integer")
		}

		salt, _ := m.Config.GetString("settings.hash_salt", "")
		link, err := LoginURL(salt, LoginRequest{
			BaseURI:   cmd.String("uri"),
			UID:       uid,
			Name:      cmd.String("name"),
			Timestamp: s.now().Unix(),
			Redirect:  cmd.Args().First(),
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(stdout(cmd), link)
		return err
	}
}

func userLoginCommandBuilder(m *meta.Meta, s *settings) *cli.Command {
	return &cli.Command{
		Name:      "user:login",
		Aliases:   []string{"uli"},
		Usage:     "print a one-time login link for a user account",
		UsageText: "drush [@alias] user:login [path] [options]",
		ArgsUsage: "[path]",
		Category:  "user",
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "account name to log in as",
				Value: "admin",
			},
			&cli.StringFlag{
				Name:  "uid",
				Usage: "account id to log in as",
				Value: "1",
			},
		},
		Action: userLoginCommandAction(s),
	}
}
