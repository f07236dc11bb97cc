package store

import (
	"context"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		missing bool
		content string
		exp     []string
		expErr  string
	}{
		{
			name:    "ok/missing_file_is_fresh_start",
			missing: true,
		},
		{
			name: "ok/empty_file_is_fresh_start",
		},
		{
			name:    "ok/modern_shape",
			content: `{"migrationsDone": ["001-a", "002-b"]}`,
			exp:     []string{"001-a", "002-b"},
		},
		{
			name:    "ok/modern_shape_empty_list",
			content: `{"migrationsDone": []}`,
			exp:     []string{},
		},
		{
			name:    "ok/legacy_shape",
			content: `{"migrations": [{"title": "001-a", "extra": 1}, {"title": "002-b"}]}`,
			exp:     []string{"001-a", "002-b"},
		},
		{
			name:    "ok/modern_shape_wins_over_legacy",
			content: `{"migrationsDone": ["001-a"], "migrations": [{"title": "002-b"}]}`,
			exp:     []string{"001-a"},
		},
		{
			name:    "err/malformed_json",
			content: `{"migrationsDone": [`,
			expErr:  "failed parsing state file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := memoryfs.New()
			if !tt.missing {
				require.NoError(t, vfs.WriteFile(fs, "/.migrate", []byte(tt.content), 0o644))
			}

			done, err := NewFileStore(fs, "/.migrate").Load(context.Background())
			if tt.expErr != "" {
				require.ErrorContains(t, err, tt.expErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.exp, done)
		})
	}
}

func TestFileStoreSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round-trips and overwrites", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		st := NewFileStore(fs, "/.migrate")

		require.NoError(t, st.Save(ctx, []string{"001-a", "002-b"}))
		done, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"001-a", "002-b"}, done)

		require.NoError(t, st.Save(ctx, []string{"001-a"}))
		done, err = st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"001-a"}, done)
	})

	t.Run("nil persists an empty list", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		st := NewFileStore(fs, "/.migrate")

		require.NoError(t, st.Save(ctx, nil))
		data, err := vfs.ReadFile(fs, "/.migrate")
		require.NoError(t, err)
		assert.JSONEq(t, `{"migrationsDone": []}`, string(data))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		st := NewFileStore(fs, "/var/lib/migrate/.migrate")

		require.NoError(t, st.Save(ctx, []string{"001-a"}))
		done, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"001-a"}, done)
	})

	t.Run("rewrites the legacy shape on save", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		legacy := `{"migrations": [{"title": "001-a"}]}`
		require.NoError(t, vfs.WriteFile(fs, "/.migrate", []byte(legacy), 0o644))
		st := NewFileStore(fs, "/.migrate")

		done, err := st.Load(ctx)
		require.NoError(t, err)
		require.NoError(t, st.Save(ctx, done))

		data, err := vfs.ReadFile(fs, "/.migrate")
		require.NoError(t, err)
		assert.JSONEq(t, `{"migrationsDone": ["001-a"]}`, string(data))
	})
}
