package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-retree/alias"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliasmod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Default(),
		},
		{
			name: "file",
			file: "backend: redis\nredisURL: redis://cache:6379/1\nlogLevel: debug\nseedDir: ./seed\n",
			want: Config{
				Backend:     BackendRedis,
				RedisURL:    "redis://cache:6379/1",
				DatabaseURL: Default().DatabaseURL,
				LogLevel:    "debug",
				LogFormat:   "text",
				SeedDir:     "./seed",
			},
		},
		{
			name: "env overrides file",
			file: "backend: redis\nlogFormat: json\n",
			env: map[string]string{
				"ALIASMOD_BACKEND":      "postgres",
				"ALIASMOD_DATABASE_URL": "postgres://db/aliases",
				"ALIASMOD_LOG_LEVEL":    "warn",
			},
			want: Config{
				Backend:     BackendPostgres,
				RedisURL:    Default().RedisURL,
				DatabaseURL: "postgres://db/aliases",
				LogLevel:    "warn",
				LogFormat:   "json",
			},
		},
		{
			name:    "invalid backend",
			env:     map[string]string{"ALIASMOD_BACKEND": "sqlite"},
			wantErr: true,
		},
		{
			name:    "invalid level",
			file:    "logLevel: loud\n",
			wantErr: true,
		},
		{
			name:    "invalid format",
			env:     map[string]string{"ALIASMOD_LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			file:    "backend: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ALIASMOD_BACKEND", "ALIASMOD_REDIS_URL", "ALIASMOD_DATABASE_URL", "ALIASMOD_LOG_LEVEL", "ALIASMOD_LOG_FORMAT", "ALIASMOD_SEED_DIR"} {
				t.Setenv(key, tt.env[key])
			}
			var path string
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			got, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "debug", LogFormat: "json"}
	log, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("table", "Officials").Debug("rebuilt")
	require.Contains(t, buf.String(), `"table":"Officials"`)

	cfg.LogLevel = "nope"
	_, err = cfg.NewLogger(&buf)
	require.Error(t, err)
}

func TestConfig_OpenStores(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	stores, closeStores, err := cfg.OpenStores(ctx)
	require.NoError(t, err)
	require.IsType(t, &alias.MemoryStore[alias.OfficialAlias]{}, stores.Officials)
	require.NoError(t, closeStores())

	s := miniredis.RunT(t)
	cfg.Backend = BackendRedis
	cfg.RedisURL = "redis://" + s.Addr()
	stores, closeStores, err = cfg.OpenStores(ctx)
	require.NoError(t, err)
	require.NoError(t, stores.Blacklist.Add(ctx, alias.BlacklistEntry{Name: "seggs"}))
	require.True(t, s.Exists(alias.KeyPrefix+alias.BlacklistName))
	require.NoError(t, closeStores())
}

func TestConfig_SeedFile(t *testing.T) {
	cfg := Default()
	require.Empty(t, cfg.SeedFile(alias.OfficialsName))

	cfg.SeedDir = "/seed"
	require.Equal(t, "officials.csv", cfg.SeedFile(alias.OfficialsName).Name())
}
