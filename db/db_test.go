package db

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	rndName := make([]byte, 8)
	_, err := rand.Read(rndName)
	require.NoError(t, err)

	// Not using just :memory: to avoid 'no such table' issues.
	// See https://github.com/mattn/go-sqlite3#faq
	d, err := Open(context.Background(),
		fmt.Sprintf("file:migrate-%x?mode=memory&cache=shared", rndName))
	require.NoError(t, err)
	defer d.Close()

	ctx := d.NewContext()
	_, err = d.ExecContext(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)
	_, err = d.ExecContext(ctx, `INSERT INTO t (name) VALUES (?)`, "a")
	require.NoError(t, err)

	var count int
	err = d.QueryRowContext(ctx, `SELECT COUNT(*) FROM t`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenUnusablePath(t *testing.T) {
	t.Parallel()

	// The driver opens lazily, so the failure surfaces on the first statement
	// and the half-opened handle must not leak.
	d, err := Open(context.Background(), "/this/dir/does/not/exist/migrate.db")
	assert.Error(t, err)
	assert.Nil(t, d)
}
