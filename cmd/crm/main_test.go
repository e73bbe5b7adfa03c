package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaycrm/crm-system/pkg/logger"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCLI_SampleImportExport(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(dir, "crm.db"))
	t.Setenv("MEDIA_ROOT", filepath.Join(dir, "media"))
	t.Setenv("LOG_LEVEL", "error")
	logger.Reset()
	t.Cleanup(logger.Reset)

	out := runCLI(t, "user", "create",
		"--username", "admin", "--email", "admin@example.com",
		"--first-name", "Ada", "--last-name", "Admin", "--password", "s3cretpass")
	assert.Contains(t, out, "created user admin")

	samplePath := filepath.Join(dir, "template.xlsx")
	out = runCLI(t, "sample", "-o", samplePath)
	assert.Contains(t, out, "wrote "+samplePath)

	out = runCLI(t, "import", samplePath, "--user", "admin", "--no-audit")
	assert.Contains(t, out, "Successfully imported 1 customers!")
	assert.Contains(t, out, "imported=1 failed=0 skipped=0")

	// Same file again: the sample email already exists.
	out = runCLI(t, "import", samplePath, "--user", "admin", "--no-audit")
	assert.Contains(t, out, "Failed to import 1 customers. Errors: Row 2: customer with this email already exists")

	pdfPath := filepath.Join(dir, "report.pdf")
	runCLI(t, "export", "pdf", "-o", pdfPath)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
