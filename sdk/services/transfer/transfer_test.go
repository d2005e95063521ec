// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/zenodo-cli/internal/zenodotest"
	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
)

const kib = 1.0 / (1 << 20) // one KiB expressed in GB

// smallLimits allows files up to 1 KiB and 2 KiB in total.
var smallLimits = Limits{MaxFileSizeGB: kib, TotalSizeLimitGB: 2 * kib}

type memObjects map[string][]byte

func (m memObjects) Stat(_ context.Context, bucket, key string) (int64, error) {
	b, ok := m[bucket+"/"+key]
	if !ok {
		return 0, config.ErrObjectNotFound
	}
	return int64(len(b)), nil
}

func (m memObjects) Open(_ context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	b, ok := m[bucket+"/"+key]
	if !ok {
		return nil, 0, config.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), nil
}

func newTestService(t *testing.T, srv *zenodotest.Server) *TransferService {
	t.Helper()
	svc, err := NewTransferService(context.Background(), config.Config{
		Core: config.CoreConfig{BaseURL: srv.BaseURL(), AccessToken: zenodotest.Token},
	}, nil)
	require.NoError(t, err)
	svc.objects = memObjects{}
	return svc
}

// writeFile creates a file of size bytes in dir and returns its path.
func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte("x"), size), 0o644))
	return p
}
