// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/zenodo-cli/internal/zenodotest"
	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
)

func newService(t *testing.T, srv *zenodotest.Server) *deposit.DepositService {
	t.Helper()
	svc, err := deposit.NewDepositService(context.Background(), config.Config{
		Core: config.CoreConfig{BaseURL: srv.BaseURL(), AccessToken: zenodotest.Token},
	}, nil)
	require.NoError(t, err)
	return svc
}

func TestNewDepositService(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := deposit.NewDepositService(context.Background(), config.Config{
			Core: config.CoreConfig{BaseURL: config.SandboxURL},
		}, nil)
		assert.ErrorIs(t, err, deposit.ErrMissingToken)
	})

	t.Run("missing base url", func(t *testing.T) {
		_, err := deposit.NewDepositService(context.Background(), config.Config{
			Core: config.CoreConfig{AccessToken: "x"},
		}, nil)
		assert.Error(t, err)
	})
}

func TestCreateUploadPublish(t *testing.T) {
	srv := zenodotest.NewServer(t)
	svc := newService(t, srv)
	ctx := context.Background()

	dep, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.False(t, dep.Submitted)
	assert.Equal(t, deposit.StatusDraft, dep.Status())
	require.NotEmpty(t, dep.BucketURL())
	assert.NotEmpty(t, dep.DraftURL())

	t.Run("publish without files is rejected", func(t *testing.T) {
		_, err := svc.Publish(ctx, dep.ID)
		var apiErr *config.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Contains(t, err.Error(), "Minimum one file")
	})

	data := []byte("a,b\n1,2\n")
	obj, err := svc.UploadFile(ctx, dep.BucketURL(), "my data.csv", bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)
	assert.Equal(t, "my data.csv", obj.Key)
	assert.Equal(t, int64(len(data)), obj.Size)
	assert.Equal(t, data, srv.FileData(dep.ID, "my data.csv"))

	md := deposit.NewMetadata("Title", "Doe, John", "FBK", "Desc")
	md.UploadType = deposit.DefaultUploadType
	updated, err := svc.SetMetadata(ctx, dep.ID, md.Fields())
	require.NoError(t, err)
	assert.Equal(t, "Title", updated.DisplayTitle())

	decoded, err := updated.DecodeMetadata()
	require.NoError(t, err)
	require.Len(t, decoded.Creators, 1)
	assert.Equal(t, "FBK", decoded.Creators[0].Affiliation)

	published, err := svc.Publish(ctx, dep.ID)
	require.NoError(t, err)
	assert.True(t, published.Submitted)
	assert.NotEmpty(t, published.DOI)
	assert.Contains(t, published.RecordURL(), "/records/")

	t.Run("publish twice is rejected", func(t *testing.T) {
		_, err := svc.Publish(ctx, dep.ID)
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	srv := zenodotest.NewServer(t)
	svc := newService(t, srv)

	id := srv.AddDeposition(map[string]interface{}{"title": "Stored"}, true)
	dep, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, dep.ID)
	assert.True(t, dep.Submitted)
	assert.Equal(t, deposit.StatusPublished, dep.Status())

	_, err = svc.Get(context.Background(), 42)
	var apiErr *config.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestList(t *testing.T) {
	srv := zenodotest.NewServer(t)
	svc := newService(t, srv)
	ctx := context.Background()

	deps, err := svc.List(ctx, deposit.ListRequest{})
	require.NoError(t, err)
	assert.Empty(t, deps)

	srv.AddDeposition(map[string]interface{}{"title": "A"}, false)
	srv.AddDeposition(map[string]interface{}{"title": "B"}, true)

	deps, err = svc.List(ctx, deposit.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, deps, 2)

	deps, err = svc.List(ctx, deposit.ListRequest{Status: deposit.StatusPublished})
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "B", deps[0].DisplayTitle())
}

func TestUnauthorized(t *testing.T) {
	srv := zenodotest.NewServer(t)
	svc, err := deposit.NewDepositService(context.Background(), config.Config{
		Core: config.CoreConfig{BaseURL: srv.BaseURL(), AccessToken: "wrong"},
	}, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background())
	var apiErr *config.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestTransportErrorMessage(t *testing.T) {
	srv := zenodotest.NewServer(t)
	svc := newService(t, srv)
	srv.Close()

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get deposition 1")
	assert.NotContains(t, err.Error(), "status")

	_, err = svc.List(context.Background(), deposit.ListRequest{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "status")
}

func TestAPIErrorMessageHasStatusOnce(t *testing.T) {
	srv := zenodotest.NewServer(t)
	svc := newService(t, srv)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "404"))
}

func TestValidateDocument(t *testing.T) {
	full := map[string]interface{}{
		"title":       "T",
		"description": "D",
		"creators":    []interface{}{map[string]interface{}{"name": "Doe, John"}},
	}
	assert.NoError(t, deposit.ValidateDocument(full))

	tests := []struct {
		name    string
		drop    string
		creator interface{}
		field   string
	}{
		{name: "no title", drop: "title", field: "title"},
		{name: "no description", drop: "description", field: "description"},
		{name: "no creators", drop: "creators", field: "author"},
		{name: "unnamed creator", creator: []interface{}{map[string]interface{}{"affiliation": "FBK"}}, field: "author"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]interface{}{}
			for k, v := range full {
				doc[k] = v
			}
			if tt.drop != "" {
				delete(doc, tt.drop)
			}
			if tt.creator != nil {
				doc["creators"] = tt.creator
			}
			err := deposit.ValidateDocument(doc)
			require.ErrorIs(t, err, deposit.ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestMetadataFields(t *testing.T) {
	md := deposit.NewMetadata("T", "", "FBK", "")
	fields := md.Fields()
	assert.Equal(t, map[string]interface{}{"title": "T"}, fields)

	md = deposit.Metadata{Keywords: []string{"a", "b"}, Version: "1.0"}
	assert.Equal(t, map[string]interface{}{
		"keywords": []interface{}{"a", "b"},
		"version":  "1.0",
	}, md.Fields())
}
