// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
)

// Runs against sandbox.zenodo.org. The draft it creates is never published.
func TestSandboxDraft(t *testing.T) {
	token := os.Getenv("ZENODO_SANDBOX_TOKEN")
	if token == "" {
		t.Skip("Missing env var ZENODO_SANDBOX_TOKEN, skipping integration test.")
	}

	ctx := context.Background()
	svc, err := deposit.NewDepositService(ctx, config.Config{
		Core: config.CoreConfig{BaseURL: config.SandboxURL, AccessToken: token},
	}, nil)
	require.NoError(t, err)

	dep, err := svc.Create(ctx)
	require.NoError(t, err)
	t.Logf("created draft %d: %s", dep.ID, dep.DraftURL())

	data := []byte("integration test\n")
	_, err = svc.UploadFile(ctx, dep.BucketURL(), "test.txt", bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)

	md := deposit.NewMetadata("zenodo-cli integration test", "Test, User", "", "Created by an automated test.")
	md.UploadType = deposit.DefaultUploadType
	_, err = svc.SetMetadata(ctx, dep.ID, md.Fields())
	require.NoError(t, err)

	got, err := svc.Get(ctx, dep.ID)
	require.NoError(t, err)
	require.False(t, got.Submitted)
}
