// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/zenodo-cli/internal/zenodotest"
	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/transfer"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// isolate runs the test in an empty working and home directory with no Zenodo env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"ZENODO_TOKEN", "ZENODO_SANDBOX_TOKEN", "ZENODO_AUTHOR", "ZENODO_AFFILIATION", "ZENODO_BASE_URL"} {
		t.Setenv(name, "")
	}
	t.Chdir(dir)
	return dir
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	t.Log(errOut.String())
	return out.String(), err
}

func TestListEmpty(t *testing.T) {
	isolate(t)
	srv := zenodotest.NewServer(t)

	out, err := run(t, "list", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	require.NoError(t, err)
	assert.Equal(t, "No depositions found.\n", out)
}

func TestListFormats(t *testing.T) {
	isolate(t)
	srv := zenodotest.NewServer(t)
	id := srv.AddDeposition(map[string]interface{}{"title": "Sea temperatures"}, false)

	out, err := run(t, "list", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Sea temperatures")
	assert.Contains(t, out, deposit.StatusDraft)

	out, err = run(t, "list", "-o", "json", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Sea temperatures"`)

	out, err = run(t, "list", "-o", "yaml", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	require.NoError(t, err)
	assert.Contains(t, out, "id: "+itoa(id))
	assert.Contains(t, out, "title: Sea temperatures")
}

func TestUploadWithSettingsFile(t *testing.T) {
	dir := isolate(t)
	srv := zenodotest.NewServer(t)

	require.NoError(t, utils.WriteSettings(filepath.Join(dir, utils.SettingsFileName), config.Sandbox, utils.SettingsValues{
		Author:      "Doe, John",
		Affiliation: "FBK",
		Token:       zenodotest.Token,
		BaseURL:     srv.BaseURL(),
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))

	out, err := run(t, "upload", "--sandbox", "a.txt", "--title", "Hello", "--description", "Greeting")
	require.NoError(t, err)
	assert.Contains(t, out, "saved as a draft")

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "POST /api/deposit/depositions", reqs[0])
	assert.Equal(t, []string{"a.txt"}, srv.FileNames(1001))
}

func TestUploadPublish(t *testing.T) {
	dir := isolate(t)
	srv := zenodotest.NewServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))

	out, err := run(t, "upload", "-f", "a.txt",
		"--token", zenodotest.Token, "--base-url", srv.BaseURL(),
		"--title", "Hello", "--description", "Greeting", "--author", "Roe, Jane",
		"--keywords", "a,b", "--version", "2.0", "--publish")
	require.NoError(t, err)
	assert.Contains(t, out, "Published successfully")
	assert.Contains(t, out, "10.5072/zenodo.1001")
}

func TestEnvTokenWinsOverFile(t *testing.T) {
	dir := isolate(t)
	srv := zenodotest.NewServer(t)
	require.NoError(t, utils.WriteSettings(filepath.Join(dir, utils.SettingsFileName), config.Production, utils.SettingsValues{
		Token:   "stale-token",
		BaseURL: srv.BaseURL(),
	}))

	_, err := run(t, "list")
	var apiErr *config.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	t.Setenv("ZENODO_TOKEN", zenodotest.Token)
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "No depositions found.\n", out)
}

func TestUploadErrors(t *testing.T) {
	dir := isolate(t)
	srv := zenodotest.NewServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))

	t.Run("missing token", func(t *testing.T) {
		_, err := run(t, "upload", "a.txt", "--base-url", srv.BaseURL(), "--title", "T", "--description", "D", "--author", "A")
		assert.ErrorIs(t, err, deposit.ErrMissingToken)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := run(t, "upload", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
		assert.ErrorIs(t, err, transfer.ErrNoFiles)
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := run(t, "upload", "a.txt", "--token", zenodotest.Token, "--base-url", srv.BaseURL(), "--title", "T", "--description", "D")
		assert.ErrorIs(t, err, deposit.ErrMissingField)
	})

	assert.Empty(t, srv.Requests())
}

func TestUploadSizeLimits(t *testing.T) {
	dir := isolate(t)
	srv := zenodotest.NewServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), bytes.Repeat([]byte("x"), 2048), 0o644))
	base := []string{"upload", "a.txt", "--token", zenodotest.Token, "--base-url", srv.BaseURL(),
		"--title", "T", "--description", "D", "--author", "A"}

	t.Run("flag limit skips the file", func(t *testing.T) {
		out, err := run(t, append(base, "--max-file-size", "0.000001")...)
		require.NoError(t, err)
		assert.Contains(t, out, "Skipped (over size limit): a.txt")
		assert.Contains(t, out, "No valid files to upload.")
	})

	t.Run("negative flag limit", func(t *testing.T) {
		_, err := run(t, append(base, "--total-size-limit=-1")...)
		assert.ErrorIs(t, err, utils.ErrInvalidSetting)
	})

	t.Run("malformed limit in settings file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, utils.SettingsFileName), []byte("max_file_size = abc\n"), 0o600))
		t.Cleanup(func() { _ = os.Remove(filepath.Join(dir, utils.SettingsFileName)) })

		_, err := run(t, base...)
		require.ErrorIs(t, err, utils.ErrInvalidSetting)
		assert.ErrorContains(t, err, "max_file_size")
		assert.ErrorContains(t, err, utils.SettingsFileName)
	})

	assert.Empty(t, srv.Requests())
}

func TestUpdate(t *testing.T) {
	isolate(t)
	srv := zenodotest.NewServer(t)
	id := srv.AddDeposition(map[string]interface{}{
		"title":       "Old",
		"description": "D",
		"creators":    []interface{}{map[string]interface{}{"name": "Doe, John"}},
	}, false)

	out, err := run(t, "update", itoa(id), "--title", "New", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	require.NoError(t, err)
	assert.Contains(t, out, "Updated the metadata")

	_, err = run(t, "update", itoa(id), "--affiliation", "FBK", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	assert.ErrorContains(t, err, "require --author")

	_, err = run(t, "update", "abc", "--title", "x", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	assert.ErrorContains(t, err, "invalid deposition id")

	published := srv.AddDeposition(map[string]interface{}{"title": "Done"}, true)
	_, err = run(t, "update", itoa(published), "--title", "x", "--token", zenodotest.Token, "--base-url", srv.BaseURL())
	assert.ErrorIs(t, err, deposit.ErrAlreadyPublished)
}

func TestConfigure(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "configure", "--author", "Doe, John", "--affiliation", "FBK", "--token", "abc", "--sandbox")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved")

	path := filepath.Join(dir, utils.SettingsFileName)
	vals, err := utils.ReadSettingsFile(path, config.Sandbox)
	require.NoError(t, err)
	assert.Equal(t, utils.SettingsValues{Author: "Doe, John", Affiliation: "FBK", Token: "abc"}, vals)

	prod, err := utils.ReadSettingsFile(path, config.Production)
	require.NoError(t, err)
	assert.Empty(t, prod.Token)

	_, err = run(t, "configure")
	assert.ErrorContains(t, err, "nothing to configure")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "zenodo "+Version))
}
