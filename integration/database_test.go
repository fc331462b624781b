//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGapscopeWithMySQL tests the gapscope CLI with a MySQL snapshot backend.
func TestGapscopeWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gapscope",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gapscope?parseTime=true", host, port.Port())
	runSnapshotLifecycle(t, "mysql", connStr)
}

// TestGapscopeWithPostgres tests the gapscope CLI with a PostgreSQL snapshot backend.
func TestGapscopeWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runSnapshotLifecycle(t, "postgresql", connStr)
}

// runSnapshotLifecycle drives the CLI through a full snapshot round trip:
// clear, analyze from a bundle (which stores the snapshot), re-analyze from
// the cached snapshot alone, then check status.
func runSnapshotLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("GAPSCOPE_SNAPSHOT_BACKEND", backend)
	_ = os.Setenv("GAPSCOPE_SNAPSHOT_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("GAPSCOPE_SNAPSHOT_BACKEND") }()
	defer func() { _ = os.Unsetenv("GAPSCOPE_SNAPSHOT_DB_CONNECT") }()

	bundlePath := writeSampleBundle(t)

	// Run gapscope snapshot clear
	err := runGapscopeCommand(t, "snapshot", "clear")
	require.NoError(t, err)

	// Run gapscope gaps from the bundle; this stores a snapshot
	err = runGapscopeCommand(t, "gaps", bundlePath, "--limit", "5")
	require.NoError(t, err)

	// Re-run from the cached snapshot only
	err = runGapscopeCommand(t, "gaps", "--niche", "mechanical keyboards", "--limit", "5")
	require.NoError(t, err)

	// Run gapscope snapshot status
	err = runGapscopeCommand(t, "snapshot", "status")
	require.NoError(t, err)
}

func runGapscopeCommand(t *testing.T, args ...string) error {
	gapscopePath := getGapscopeBinary()
	cmd := exec.Command(gapscopePath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
