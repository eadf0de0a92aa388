package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogCheck(t *testing.T) {
	path := writeSeed(t, `products:
  - name: Spotify Family
    description: 12 Months
    price: 30.5
  - name: Disney Plus
    description: 1 Year Access
    price: 20
`)

	out, err := execute(t, "catalog", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Spotify Family")
	assert.Contains(t, out, "$30.5")
	assert.Contains(t, out, "2 products OK")
}

func TestCatalogCheck_Invalid(t *testing.T) {
	path := writeSeed(t, `products:
  - name: Broken
    description: negative
    price: -1
`)

	_, err := execute(t, "catalog", "check", path)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "storefront version ")
}

func TestServe_MissingConfiguration(t *testing.T) {
	t.Setenv("TOKEN", "")
	t.Setenv("CLIENT_ID", "")

	_, err := execute(t, "serve")
	require.Error(t, err)
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
}
