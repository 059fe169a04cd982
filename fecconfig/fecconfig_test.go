package fecconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
	"github.com/srsgo/fec/ldpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
ldpc:
  - name: bg1-qpsk-layered
    bg: 1
    z: 22
    rv: 0
    mod: qpsk
    e: 1000
    max_iter: 10
    alpha: 0.8
    precision: float
    schedule: layered
    backend: scalar
polar:
  - name: n7
    n: 7
    frozen: [0, 1, 2, 3, 4, 5, 6, 7, 8]
    precision: float
    backend: scalar
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesBothSections(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	batch, err := Load(path)
	require.NoError(t, err)
	require.Len(t, batch.LDPC, 1)
	require.Len(t, batch.Polar, 1)

	v := batch.LDPC[0]
	assert.Equal(t, basegraph.BG1, v.BaseGraph())
	assert.Equal(t, ldpc.Layered, v.ScheduleValue())
	assert.Equal(t, ldpc.Scalar, v.BackendValue())
	assert.Equal(t, ldpc.Float, v.PrecisionValue())
}

func TestLoadRejectsEmptyBatch(t *testing.T) {
	path := writeTemp(t, "ldpc: []\npolar: []\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, fec.ErrInvalidParameter)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeTemp(t, `
ldpc:
  - name: bad
    bg: 1
    z: 22
    max_iter: 10
    alpha: 0.8
    backend: fpga
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, fec.ErrInvalidParameter)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
