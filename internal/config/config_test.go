package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GMDESK_ADDR", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("GMDESK_ACCEPT_TICKETS", "")
	t.Setenv("GMDESK_MAX_QUESTION_LEN", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.Server.Addr)
	}
	if !cfg.Tickets.AcceptByDefault {
		t.Fatal("accept switch must default to on")
	}
	if cfg.Tickets.MaxQuestionLen != 4096 {
		t.Fatalf("unexpected default question bound: %d", cfg.Tickets.MaxQuestionLen)
	}
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gmdesk.yaml")
	body := []byte(`
server:
  addr: ":9090"
database:
  driver: postgres
  dsn: "host=localhost dbname=gmdesk sslmode=disable"
tickets:
  accept_by_default: false
  max_question_len: 512
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GMDESK_ADDR", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("GMDESK_ACCEPT_TICKETS", "")
	t.Setenv("GMDESK_MAX_QUESTION_LEN", "")
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("file value not applied: %s", cfg.Server.Addr)
	}
	if cfg.Database.Driver != "mysql" {
		t.Fatalf("env override must win, got %s", cfg.Database.Driver)
	}
	if cfg.Tickets.AcceptByDefault {
		t.Fatal("file should have turned the accept switch off")
	}
	if cfg.Tickets.MaxQuestionLen != 512 {
		t.Fatalf("unexpected question bound: %d", cfg.Tickets.MaxQuestionLen)
	}
}

func TestLoadRejectsInvalidQuestionBound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("tickets:\n  max_question_len: -1\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GMDESK_MAX_QUESTION_LEN", "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative question bound")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
