package crud

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"ormbench/benchmark"
	"ormbench/benchmark/engines/postgres"
	"ormbench/resultlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Starts a disposable postgres server and returns its connection string
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_USER":     "bench",
				"POSTGRES_DB":       "sampledata",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://bench:secret@%s:%s/sampledata?sslmode=disable", host, port.Port())
}

func TestPostgres(t *testing.T) {
	dsn := startPostgres(t)

	for _, driver := range []string{"pq", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			engine, err := postgres.New([]byte(fmt.Sprintf("connection: %s\ndriver: %s\n", dsn, driver)))
			require.NoError(t, err)

			stdout := &bytes.Buffer{}
			c, err := New([]byte(`
createSchema: true
trials: 2
insertOuter: 10
insertInner: 1000
selects: 5
firstNames: ../../data/firstnames.txt
lastNames: ../../data/lastnames.txt
`), benchmark.Env{
				RunID:   driver,
				Engine:  engine,
				Results: resultlog.New(filepath.Join(t.TempDir(), "speed.txt")),
				Stdout:  stdout,
			})
			require.NoError(t, err)
			require.NoError(t, c.Setup())

			require.NoError(t, c.InitializeData())
			_, err = c.TestInsert()
			require.NoError(t, err)

			sess, err := engine.Open()
			require.NoError(t, err)
			defer sess.Close()

			var persons []Person
			require.NoError(t, sess.SQL().SelectFrom("person").All(&persons))
			require.Len(t, persons, 10000)
			for _, p := range persons {
				require.Equal(t, c.DepartmentKey(), p.Department)
			}

			results, err := c.RunAllTests()
			require.NoError(t, err)
			require.Len(t, results, 4)
			for _, r := range results {
				assert.Len(t, r.Trials, 2)
				assert.GreaterOrEqual(t, r.Seconds, 0.0)
			}
		})
	}
}
