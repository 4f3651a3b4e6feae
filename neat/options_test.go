package neat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	opts.Sensor = 2
	opts.Output = 1
	require.NoError(t, opts.Validate())

	bad := DefaultOptions()
	bad.Sensor = 0
	bad.Output = 1
	assert.Error(t, bad.Validate())

	bad2 := DefaultOptions()
	bad2.Sensor = 2
	bad2.Output = 1
	bad2.InitState = "bogus"
	assert.Error(t, bad2.Validate())

	bad3 := DefaultOptions()
	bad3.Demography = 0
	bad3.Sensor = 2
	bad3.Output = 1
	assert.Error(t, bad3.Validate())
}

func TestLoadYAMLOptions(t *testing.T) {
	doc := `
demography: 50
sensor: 2
output: 1
bias: true
initState: allLinked
logLevel: error
`
	opts, err := LoadYAMLOptions(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 50, opts.Demography)
	assert.Equal(t, 2, opts.Sensor)
	assert.Equal(t, 1, opts.Output)
	assert.True(t, opts.Bias)
	assert.Equal(t, TopologyAllLinked, opts.InitState)
}

func TestLoadOptionsPlainText(t *testing.T) {
	doc := "demography 100\nsensor 3\noutput 2\nbias true\ninitState oneLink\nlog_level warn\n"
	opts, err := LoadOptions(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 100, opts.Demography)
	assert.Equal(t, 3, opts.Sensor)
	assert.Equal(t, 2, opts.Output)
	assert.Equal(t, TopologyOneLink, opts.InitState)
}

func TestLoadOptionsUnknownKey(t *testing.T) {
	doc := "bogus_param 1\n"
	_, err := LoadOptions(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoadINIOptions(t *testing.T) {
	doc := "[NEAT]\ndemography = 75\nsensor = 2\noutput = 1\nbias = true\nlogLevel = warn\ninitState = oneLink\n"
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	opts, err := LoadINIOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 75, opts.Demography)
	assert.Equal(t, 2, opts.Sensor)
	assert.Equal(t, 1, opts.Output)
	assert.True(t, opts.Bias)
	assert.Equal(t, TopologyOneLink, opts.InitState)
}

func TestReadOptionsFromFileDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("demography: 10\nsensor: 1\noutput: 1\n"), 0o644))
	opts, err := ReadOptionsFromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Demography)

	iniPath := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(iniPath, []byte("[NEAT]\ndemography = 11\nsensor = 1\noutput = 1\n"), 0o644))
	opts, err = ReadOptionsFromFile(iniPath)
	require.NoError(t, err)
	assert.Equal(t, 11, opts.Demography)
}
