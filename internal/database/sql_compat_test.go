package database

import (
	"strings"
	"testing"
)

func TestConvertPlaceholdersPostgres(t *testing.T) {
	t.Setenv("TEST_DB_DRIVER", "postgres")

	got := ConvertPlaceholders("SELECT question FROM gm_ticket WHERE submitter_id = ? AND last_update > ?")
	want := "SELECT question FROM gm_ticket WHERE submitter_id = $1 AND last_update > $2"
	if got != want {
		t.Fatalf("unexpected conversion:\n got: %s\nwant: %s", got, want)
	}
}

func TestConvertPlaceholdersMySQLPassthrough(t *testing.T) {
	t.Setenv("TEST_DB_DRIVER", "mysql")

	q := "DELETE FROM gm_ticket WHERE submitter_id = ?"
	if got := ConvertPlaceholders(q); got != q {
		t.Fatalf("mysql queries must pass through unchanged, got %s", got)
	}
}

func TestConvertPlaceholdersRejectsDollarNumbers(t *testing.T) {
	t.Setenv("TEST_DB_DRIVER", "postgres")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for $N placeholder")
		}
	}()
	ConvertPlaceholders("SELECT 1 WHERE id = $1")
}

func TestUpsertConflictClause(t *testing.T) {
	t.Setenv("TEST_DB_DRIVER", "mysql")
	if clause := UpsertConflictClause("submitter_id", []string{"question"}); !strings.HasPrefix(clause, "ON DUPLICATE KEY UPDATE") {
		t.Fatalf("unexpected mysql clause: %s", clause)
	}

	t.Setenv("TEST_DB_DRIVER", "sqlite3")
	clause := UpsertConflictClause("submitter_id", []string{"question", "response"})
	want := "ON CONFLICT (submitter_id) DO UPDATE SET question = excluded.question, response = excluded.response"
	if clause != want {
		t.Fatalf("unexpected sqlite clause:\n got: %s\nwant: %s", clause, want)
	}
}

func TestGetDBDriverDefault(t *testing.T) {
	t.Setenv("TEST_DB_DRIVER", "")
	t.Setenv("DB_DRIVER", "")
	if got := GetDBDriver(); got != "sqlite3" {
		t.Fatalf("expected sqlite3 default, got %s", got)
	}
}
