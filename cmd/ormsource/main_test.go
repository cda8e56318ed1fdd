package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/twtxwydavid/hibernate-orm/internal/config"
	"github.com/twtxwydavid/hibernate-orm/internal/metadata"
)

const (
	shopPackage  = "github.com/twtxwydavid/hibernate-orm/examples/shop"
	shopDocument = "../../examples/shop/shop.hbm.yaml"
)

func shopOptions() *config.Options {
	opts := config.Defaults()
	opts.MappingFiles = []string{shopDocument}
	opts.Packages = []string{shopPackage}

	return opts
}

func TestRun_Check(t *testing.T) {
	opts := shopOptions()
	opts.Check = true

	var out bytes.Buffer
	require.NoError(t, run(opts, zaptest.NewLogger(t).Sugar(), &out))

	assert.Equal(t, "ok: 4 entities, 2 filter definitions\n", out.String())
}

func TestRun_Summary(t *testing.T) {
	opts := shopOptions()
	opts.Summary = true

	var out bytes.Buffer
	require.NoError(t, run(opts, zaptest.NewLogger(t).Sugar(), &out))

	assert.Contains(t, out.String(), "shop.Customer (")
	assert.Contains(t, out.String(), "filter definitions: ")
}

func TestRun_YAMLToFile(t *testing.T) {
	opts := shopOptions()
	opts.Output = filepath.Join(t.TempDir(), "metadata.yaml")

	var out bytes.Buffer
	require.NoError(t, run(opts, zaptest.NewLogger(t).Sugar(), &out))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)

	var md metadata.Metadata
	require.NoError(t, yaml.Unmarshal(data, &md))
	assert.Len(t, md.Entities, 4)
	assert.NotNil(t, md.Entity("shop.Customer"))
}

func TestRun_ReportsEveryBrokenDocument(t *testing.T) {
	dir := t.TempDir()

	opts := config.Defaults()
	opts.MappingFiles = []string{
		filepath.Join(dir, "missing.hbm.yaml"),
		filepath.Join(dir, "absent.hbm.yaml"),
	}

	err := run(opts, zaptest.NewLogger(t).Sugar(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestLoadDocuments_MergesDiagnostics(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.hbm.yaml")
	second := filepath.Join(dir, "second.hbm.yaml")

	require.NoError(t, os.WriteFile(first, []byte(`
classes:
  - name: A
    id: {name: id}
    attributes:
      - property: {name: title}
`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`
classes:
  - name: B
    id: {name: id}
    attributes:
      - property: {name: label}
      - many-to-one: {name: owner, class: A}
`), 0o644))

	opts := config.Defaults()
	opts.MappingFiles = []string{first, second}

	core, logs := observer.New(zapcore.DebugLevel)

	docs, diags, err := loadDocuments(opts, zap.New(core).Sugar())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.True(t, diags.IsValid())

	require.Len(t, diags.Infos, 3)
	assert.Equal(t, "A.title", diags.Infos[0].Path)
	assert.Equal(t, "B.label", diags.Infos[1].Path)
	assert.Equal(t, "B.owner", diags.Infos[2].Path)

	implicit := logs.FilterField(zap.String("code", "implicit_column"))
	assert.Equal(t, 3, implicit.Len())
	assert.Equal(t, zapcore.DebugLevel, implicit.All()[0].Level)
}

func TestUsage(t *testing.T) {
	var out bytes.Buffer
	usage(&out)

	assert.Contains(t, out.String(), "usage: ormsource")
	assert.Contains(t, out.String(), "-summary")
}
