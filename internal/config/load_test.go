package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, "http://localhost:4466", v.GetString("engine.url"))
	assert.Equal(t, 30*time.Second, v.GetDuration("engine.timeout"))
	assert.Equal(t, "engineql", v.GetString("observability.service_name"))
	assert.Equal(t, "info", v.GetString("observability.logging.level"))
	assert.Equal(t, "grpc", v.GetString("observability.otlp.protocol"))
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("ENGINEQL_ENGINE_URL", "https://engine.example:4466")
	t.Setenv("ENGINEQL_OBSERVABILITY_LOGGING_LEVEL", "debug")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ENGINEQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	assert.Equal(t, "https://engine.example:4466", v.GetString("engine.url"))
	assert.Equal(t, "debug", v.GetString("observability.logging.level"))
	assert.Equal(t, "json", v.GetString("observability.logging.format"), "untouched keys keep defaults")
}

func TestBindChangedFlagsToViper(t *testing.T) {
	defineFlags()
	require.NoError(t, pflag.CommandLine.Set("engine.url", "http://flagged:4466"))

	v := viper.New()
	setDefaults(v)
	bindChangedFlagsToViper(v)

	assert.Equal(t, "http://flagged:4466", v.GetString("engine.url"))
	assert.Equal(t, 30*time.Second, v.GetDuration("engine.timeout"), "unset flags do not override")
}

func TestBindChangedFlagsSkipsCommandFlags(t *testing.T) {
	if pflag.CommandLine.Lookup("model") == nil {
		pflag.String("model", "", "")
	}
	require.NoError(t, pflag.CommandLine.Set("model", "User"))

	v := viper.New()
	bindChangedFlagsToViper(v)

	assert.False(t, v.IsSet("model"), "undotted flags are not configuration keys")
}

func TestReadSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api-key")
	require.NoError(t, os.WriteFile(path, []byte("  s3cret\n"), 0o600))

	key, err := readSecretFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key, "surrounding whitespace is trimmed")

	_, err = readSecretFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
