package database

import (
	"strings"
	"testing"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
)

func TestRebindPostgres(t *testing.T) {
	d := &DB{Driver: DriverPostgres}
	cases := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM contacts WHERE id = ?", "SELECT * FROM contacts WHERE id = $1"},
		{"INSERT INTO t (a, b, c) VALUES (?, ?, ?)", "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"},
		{"SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
	}
	for _, tc := range cases {
		if got := d.Rebind(tc.in); got != tc.want {
			t.Errorf("Rebind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRebindMySQLUnchanged(t *testing.T) {
	d := &DB{Driver: DriverMySQL}
	q := "UPDATE payments SET status = ? WHERE id = ?"
	if got := d.Rebind(q); got != q {
		t.Fatalf("mysql query rewritten: %q", got)
	}
}

func TestBuildDSNUnsupported(t *testing.T) {
	if _, err := buildDSN("oracle", config.Config{DBHost: "localhost", DBUser: "nexus", DBName: "nexus"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestBuildDSNMySQLCountsMatchedRows(t *testing.T) {
	dsn, err := buildDSN(DriverMySQL, config.Config{DBHost: "db", DBUser: "nexus", DBPass: "pw", DBName: "nexus"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dsn, "nexus:pw@tcp(db:3306)/nexus?") {
		t.Errorf("dsn = %q", dsn)
	}
	for _, opt := range []string{"parseTime=true", "loc=UTC", "clientFoundRows=true"} {
		if !strings.Contains(dsn, opt) {
			t.Errorf("dsn %q missing %s", dsn, opt)
		}
	}
}

func TestWithFoundRows(t *testing.T) {
	dsn, err := withFoundRows("nexus:pw@tcp(db:3306)/nexus?parseTime=true")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dsn, "clientFoundRows=true") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn = %q", dsn)
	}
	if _, err := withFoundRows("not a dsn"); err == nil {
		t.Fatal("expected parse error")
	}
}
