//go:build integration

package docstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/HendryAvila/focusmate/internal/docstore"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "focusmate_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/focusmate_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPostgres_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := docstore.NewPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Fetch(ctx, "chris")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	require.NoError(t, s.Write(ctx, "chris", []byte(`{"personal_info":{"name":"Chris"}}`)))
	require.NoError(t, s.Write(ctx, "chris", []byte(`{"personal_info":{"name":"Chris","age":30}}`)))

	got, err := s.Fetch(ctx, "chris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"personal_info":{"name":"Chris","age":30}}`, string(got))
}
