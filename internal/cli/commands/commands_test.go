package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/config"
)

// execute runs the root command with args and returns what it wrote to
// stdout. Flag values are reset first since cobra keeps them between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	oldOut, oldErr, oldFormatter := ui.Stdout, ui.Stderr, ui.GlobalFormatter
	ui.Stdout, ui.Stderr = &stdout, &stderr
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr, ui.GlobalFormatter = oldOut, oldErr, oldFormatter
	})

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, filepath.Join(dir, config.Dir, config.ConfigFile))

	_, err = execute(t, "init", "--root-dir", dir)
	assert.ErrorContains(t, err, "already initialized")

	_, err = execute(t, "init", "--root-dir", dir, "--force", "--driver", "bolt")
	require.NoError(t, err)

	cfg, err := config.NewManager(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.Store.Driver)
	assert.Equal(t, "sequences.db", cfg.Store.Path)
}

func TestInit_KeepsLegacyStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, legacyStoreFile), []byte(`{"SKU": 41}`), 0o644))

	out, err := execute(t, "init", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, legacyStoreFile)

	out, err = execute(t, "generate", "SKU001", "-n", "2", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	batch := decode(t, out)
	assert.Equal(t, []any{"SKU042", "SKU043"}, batch["labels"])

	raw, err := os.ReadFile(filepath.Join(dir, legacyStoreFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"SKU": 43`)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "generate", "LOT0001", "-n", "3", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	first := decode(t, out)
	assert.Equal(t, []any{"LOT0001", "LOT0002", "LOT0003"}, first["labels"])
	assert.Equal(t, false, first["overridden"])
	assert.EqualValues(t, 4, first["next_number"])

	out, err = execute(t, "generate", "LOT0001", "-n", "2", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	second := decode(t, out)
	assert.Equal(t, []any{"LOT0004", "LOT0005"}, second["labels"])
	assert.Equal(t, true, second["overridden"])
	assert.Equal(t, "LOT0001", second["requested"])

	out, err = execute(t, "generate", "LOT0001", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "LOT0006")
	assert.Contains(t, out, "already issued")
}

func TestGenerate_BadCountIsOne(t *testing.T) {
	out, err := execute(t, "generate", "A1", "-n", "lots", "--root-dir", t.TempDir(), "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []any{"A1"}, decode(t, out)["labels"])
}

func TestPeek(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "peek", "SKU", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.EqualValues(t, 1, decode(t, out)["next_number"])

	_, err = execute(t, "generate", "SKU0041", "--root-dir", dir)
	require.NoError(t, err)

	out, err = execute(t, "peek", "SKU", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	p := decode(t, out)
	assert.EqualValues(t, 42, p["next_number"])
	assert.Equal(t, "SKU42", p["next_article"])

	out, err = execute(t, "peek", "SKU0001", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "SKU0042")
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "list", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No sequences found")

	for _, base := range []string{"B10", "A-7"} {
		_, err := execute(t, "generate", base, "--root-dir", dir)
		require.NoError(t, err)
	}

	out, err = execute(t, "list", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	var entries []ui.SequenceEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "A-", entries[0].Prefix)
	require.NotNil(t, entries[0].Last)
	assert.Equal(t, 7, *entries[0].Last)
	assert.Equal(t, "B", entries[1].Prefix)

	out, err = execute(t, "list", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "PREFIX")
}

func TestExpand_DoesNotAllocate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "expand", "A08", "-n", "3", "--root-dir", dir)
	require.NoError(t, err)
	for _, l := range []string{"A08", "A09", "A10"} {
		assert.Contains(t, out, l)
	}

	out, err = execute(t, "list", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "label.png")

	_, err := execute(t, "render", "SKU0042", "-o", out, "--root-dir", dir)
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")))
}

func TestPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.pdf")

	_, err := execute(t, "pdf", "X001", "-n", "2", "-o", out, "--root-dir", dir)
	require.NoError(t, err)
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	// without --allocate nothing was recorded
	peek, err := execute(t, "peek", "X", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.EqualValues(t, 1, decode(t, peek)["next_number"])

	res, err := execute(t, "pdf", "X001", "-n", "2", "-o", out, "--allocate", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []any{"X001", "X002"}, decode(t, res)["labels"])

	peek, err = execute(t, "peek", "X", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.EqualValues(t, 3, decode(t, peek)["next_number"])
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "config", "show", "--root-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Not initialized")
	assert.Contains(t, out, "driver: file")

	out, err = execute(t, "config", "show", "--root-dir", dir, "--format", "json")
	require.NoError(t, err)
	cfg := decode(t, out)
	assert.Contains(t, cfg, "Store")
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "init", "--root-dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "config", "validate", "--root-dir", dir, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "last_numbers.json")

	configPath := filepath.Join(dir, config.Dir, config.ConfigFile)
	require.NoError(t, os.WriteFile(configPath, []byte("store:\n  driver: redis\n"), 0o644))

	_, err = execute(t, "config", "validate", "--root-dir", dir)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, Version, decode(t, out)["version"])
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "SKU0042", safeFileName("SKU0042"))
	assert.Equal(t, "a_b_c", safeFileName("a/b c"))
	assert.Equal(t, "label", safeFileName(".."))
	assert.Equal(t, "label", safeFileName(""))
}

func TestMCP_UnsupportedTransport(t *testing.T) {
	_, err := execute(t, "mcp", "--transport", "carrier-pigeon", "--root-dir", t.TempDir())
	assert.ErrorContains(t, err, "unsupported transport")
}

func TestMCPHTTPConfig(t *testing.T) {
	resetFlags(rootCmd)
	cfg := config.DefaultConfig()
	cfg.MCP.Transport.HTTP.Port = 8080

	httpConfig, err := mcpHTTPConfig(mcpCmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, 8080, httpConfig.Port, "config port wins over the flag default")

	require.NoError(t, mcpCmd.Flags().Set("port", "9000"))
	require.NoError(t, mcpCmd.Flags().Set("auth", "bearer"))
	_, err = mcpHTTPConfig(mcpCmd, cfg)
	assert.ErrorContains(t, err, "bearer token required")

	require.NoError(t, mcpCmd.Flags().Set("auth-token", "s3cret"))
	httpConfig, err = mcpHTTPConfig(mcpCmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, 9000, httpConfig.Port)
	assert.Equal(t, "s3cret", httpConfig.Auth.Bearer)
	assert.Equal(t, 8080, cfg.MCP.Transport.HTTP.Port, "configuration is not modified")
	resetFlags(rootCmd)
}
