package environs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"model-deploy-service/internal/core/domain"
)

const referenceYAML = `name: dev-environment
channels:
  - defaults
  - conda-forge
dependencies:
  - python=3.9
  - jupyter
  - matplotlib
  - numpy
  - scikit-learn
  - pip:
      - some-dev-tool
      - another-dev-tool
`

func writeReference(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "environment.yml")
	require.NoError(t, os.WriteFile(path, []byte(referenceYAML), 0o644))
	return path
}

func TestGenerate_PinsInterpreterAndWhitelist(t *testing.T) {
	env, err := Generate(writeReference(t), Options{
		Name:          "scoring-env",
		PythonVersion: "3.6",
		CondaPackages: []string{"scikit-learn", "numpy", "pillow"},
		PipPackages:   []string{"fastai==1.0.48"},
	})
	require.NoError(t, err)

	assert.Equal(t, "scoring-env", env.Name)
	assert.Equal(t, "python=3.6", env.PythonPin())

	// Pin first, then exactly the conda whitelist, then the pip block.
	require.Len(t, env.Dependencies, 5)
	assert.Equal(t, "python=3.6", env.Dependencies[0])
	assert.Equal(t, "scikit-learn", env.Dependencies[1])
	assert.Equal(t, "numpy", env.Dependencies[2])
	assert.Equal(t, "pillow", env.Dependencies[3])
	assert.Equal(t, map[string][]string{"pip": {"fastai==1.0.48"}}, env.Dependencies[4])

	// Reference channels carry over; reference deps do not leak in.
	assert.Equal(t, []string{"defaults", "conda-forge"}, env.Channels)
	assert.NotContains(t, env.Dependencies, "jupyter")
	assert.NotContains(t, env.Dependencies, "matplotlib")
}

func TestGenerate_Defaults(t *testing.T) {
	env, err := Generate(writeReference(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, "scoring-env", env.Name)
	assert.Equal(t, "python="+DefaultPythonVersion, env.PythonPin())
	// No whitelists: just the interpreter pin.
	assert.Len(t, env.Dependencies, 1)
}

func TestGenerate_MissingReference(t *testing.T) {
	_, err := Generate(filepath.Join(t.TempDir(), "missing.yml"), Options{})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestGenerate_MalformedReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0o644))

	_, err := Generate(path, Options{})
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	env, err := Generate(writeReference(t), Options{
		CondaPackages: []string{"numpy"},
		PipPackages:   []string{"azureml-defaults"},
	})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "sub", "scoring-env.yml")
	require.NoError(t, env.Write(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var reread Environment
	require.NoError(t, yaml.Unmarshal(data, &reread))
	assert.Equal(t, env.Name, reread.Name)
	assert.Equal(t, env.Channels, reread.Channels)
	assert.Equal(t, "python="+DefaultPythonVersion, reread.PythonPin())
}
