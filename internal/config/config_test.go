package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/forensics",
		LogDir:  "/home/user/forensics/log",
		Catalog: CatalogConfig{Path: "/home/user/forensics/catalog.db"},
		Upload: UploadConfig{
			Bucket:      "evidence-archive",
			Prefix:      "lab-7",
			Region:      "eu-west-1",
			AccessKeyID: "AKIAEXAMPLE",
		},
		Export: ExportConfig{RecipientPath: "/home/user/forensics/recipients.txt"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Catalog.Path != original.Catalog.Path {
		t.Errorf("Catalog.Path = %q, want %q", got.Catalog.Path, original.Catalog.Path)
	}
	if got.Upload.Bucket != "evidence-archive" {
		t.Errorf("Upload.Bucket = %q, want %q", got.Upload.Bucket, "evidence-archive")
	}
	if got.Upload.Prefix != "lab-7" {
		t.Errorf("Upload.Prefix = %q, want %q", got.Upload.Prefix, "lab-7")
	}
	if got.Upload.Region != "eu-west-1" {
		t.Errorf("Upload.Region = %q, want %q", got.Upload.Region, "eu-west-1")
	}
	if got.Upload.AccessKeyID != "AKIAEXAMPLE" {
		t.Errorf("Upload.AccessKeyID = %q, want %q", got.Upload.AccessKeyID, "AKIAEXAMPLE")
	}
	if got.Export.RecipientPath != original.Export.RecipientPath {
		t.Errorf("Export.RecipientPath = %q, want %q", got.Export.RecipientPath, original.Export.RecipientPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/forensics")

	if cfg.BaseDir != "/data/forensics" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/forensics")
	}
	if cfg.LogDir != filepath.Join("/data/forensics", "log") {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/forensics/log")
	}
	if cfg.Catalog.Path != filepath.Join("/data/forensics", "catalog.db") {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, "/data/forensics/catalog.db")
	}
	if cfg.Upload.Region != "us-east-1" {
		t.Errorf("Upload.Region = %q, want %q", cfg.Upload.Region, "us-east-1")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "flab.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "flab.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "flab.toml")
		cfg := NewConfig(dir)
		cfg.Upload.Bucket = "read-test"

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Upload.Bucket != "read-test" {
			t.Errorf("Upload.Bucket = %q, want %q", got.Upload.Bucket, "read-test")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/flab.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
