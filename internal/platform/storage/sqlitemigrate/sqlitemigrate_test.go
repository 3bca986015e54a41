package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyRunsInLexicalOrder(t *testing.T) {
	sqlDB := openTestDB(t)
	fsys := fstest.MapFS{
		"002_add_column.sql": {Data: []byte("ALTER TABLE things ADD COLUMN label TEXT;")},
		"001_create.sql":     {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
	}

	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO things (id, label) VALUES (1, 'a')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}

	var applied int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("recorded %d migrations, want 2", applied)
	}
}

func TestApplyIdempotent(t *testing.T) {
	sqlDB := openTestDB(t)
	fsys := fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
	}

	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("first Apply() error: %v", err)
	}
	// A second pass must skip the already-applied file; re-running the
	// CREATE would fail.
	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("second Apply() error: %v", err)
	}
}

func TestApplySkipsEmptyAndNonSQLFiles(t *testing.T) {
	sqlDB := openTestDB(t)
	fsys := fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
		"002_empty.sql":  {Data: []byte("   \n")},
		"README.md":      {Data: []byte("DROP TABLE things;")},
	}

	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if _, err := sqlDB.Exec("INSERT INTO things (id) VALUES (1)"); err != nil {
		t.Errorf("schema missing or dropped: %v", err)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	sqlDB := openTestDB(t)
	fsys := fstest.MapFS{
		"001_bad.sql": {Data: []byte("CREATE TABLE broken (;")},
	}

	if err := Apply(sqlDB, fsys); err == nil {
		t.Fatal("Apply() with invalid SQL succeeded")
	}

	var applied int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 0 {
		t.Errorf("failed migration recorded as applied")
	}
}

func TestApplyNilDB(t *testing.T) {
	if err := Apply(nil, fstest.MapFS{}); err == nil {
		t.Error("Apply(nil) succeeded")
	}
}
