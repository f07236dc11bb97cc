package source

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/migrate/db"
	"go.hackfix.me/migrate/migration"
)

// fakeQuerier records every executed statement.
type fakeQuerier struct {
	execs []string
}

var _ db.Querier = (*fakeQuerier)(nil)

func (q *fakeQuerier) ExecContext(_ context.Context, sql string, _ ...any) (sql.Result, error) {
	q.execs = append(q.execs, sql)
	return nil, nil
}

func writeScripts(t *testing.T, fs vfs.FileSystem, dir string, names ...string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, vfs.WriteFile(fs, dir+"/"+name, []byte("-- "+name+"\n"), 0o644))
	}
}

func titlesOf(migrations []*migration.Migration) []string {
	titles := make([]string, len(migrations))
	for i, m := range migrations {
		titles[i] = m.Title
	}
	return titles
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("orders numerically by id", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		writeScripts(t, fs, "/migrations",
			"10-third.up.sql", "10-third.down.sql",
			"2-second.up.sql", "2-second.down.sql",
			"1-first.up.sql", "1-first.down.sql",
			"README.md", // ignored
		)

		migrations, err := Load(fs, "/migrations", &fakeQuerier{}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"1-first", "2-second", "10-third"}, titlesOf(migrations))
	})

	t.Run("sets the environment tag", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		writeScripts(t, fs, "/migrations", "001-a.up.sql", "001-a.down.sql")

		migrations, err := Load(fs, "/migrations", &fakeQuerier{}, "staging")
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Equal(t, "staging", migrations[0].Environment)
	})

	t.Run("actions execute the script content", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		require.NoError(t, fs.MkdirAll("/migrations", 0o755))
		require.NoError(t, vfs.WriteFile(fs,
			"/migrations/001-users.up.sql", []byte("CREATE TABLE users (id INTEGER);"), 0o644))
		require.NoError(t, vfs.WriteFile(fs,
			"/migrations/001-users.down.sql", []byte("DROP TABLE users;"), 0o644))

		q := &fakeQuerier{}
		migrations, err := Load(fs, "/migrations", q, "")
		require.NoError(t, err)
		require.Len(t, migrations, 1)

		ctx := context.Background()
		require.NoError(t, migrations[0].Up(ctx, ""))
		require.NoError(t, migrations[0].Down(ctx, ""))
		assert.Equal(t, []string{
			"CREATE TABLE users (id INTEGER);",
			"DROP TABLE users;",
		}, q.execs)
	})

	t.Run("missing down script", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		writeScripts(t, fs, "/migrations", "001-a.up.sql")

		_, err := Load(fs, "/migrations", &fakeQuerier{}, "")
		require.ErrorIs(t, err, ErrIncompleteMigration)
		assert.ErrorContains(t, err, `"001-a" has no down script`)
	})

	t.Run("missing up script", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		writeScripts(t, fs, "/migrations", "001-a.down.sql")

		_, err := Load(fs, "/migrations", &fakeQuerier{}, "")
		require.ErrorIs(t, err, ErrIncompleteMigration)
	})

	t.Run("duplicate id with different names", func(t *testing.T) {
		t.Parallel()

		fs := memoryfs.New()
		writeScripts(t, fs, "/migrations",
			"001-a.up.sql", "001-a.down.sql", "001-b.up.sql", "001-b.down.sql")

		_, err := Load(fs, "/migrations", &fakeQuerier{}, "")
		require.ErrorIs(t, err, ErrDuplicateMigration)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := Load(memoryfs.New(), "/nope", &fakeQuerier{}, "")
		require.ErrorContains(t, err, "failed reading migrations directory")
	})
}

func TestNextID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		exp   uint64
	}{
		{
			name: "missing directory starts at 1",
			exp:  1,
		},
		{
			name:  "empty directory starts at 1",
			files: []string{},
			exp:   1,
		},
		{
			name:  "one past the highest id",
			files: []string{"001-a.up.sql", "001-a.down.sql", "007-b.up.sql", "007-b.down.sql"},
			exp:   8,
		},
		{
			name:  "unrelated files ignored",
			files: []string{"notes.txt"},
			exp:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := memoryfs.New()
			if tt.files != nil {
				writeScripts(t, fs, "/migrations", tt.files...)
			}

			id, err := NextID(fs, "/migrations")
			require.NoError(t, err)
			assert.Equal(t, tt.exp, id)
		})
	}
}
