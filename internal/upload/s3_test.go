package upload

import (
	"context"
	"testing"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/config"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

func TestS3Uploader_ObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		section string
		file    string
		want    string
	}{
		{
			name:    "no prefix",
			section: "evidence",
			file:    "20240115_103000_photo.jpg",
			want:    "case_042/evidence/20240115_103000_photo.jpg",
		},
		{
			name:    "with prefix",
			prefix:  "lab-7",
			section: "evidence",
			file:    "20240115_103000_photo.jpg",
			want:    "lab-7/case_042/evidence/20240115_103000_photo.jpg",
		},
		{
			name:    "digest file",
			prefix:  "lab-7",
			section: "hashes",
			file:    "20240115_103000_photo.jpg.sha256",
			want:    "lab-7/case_042/hashes/20240115_103000_photo.jpg.sha256",
		},
		{
			name:    "trailing slash in prefix is normalized",
			prefix:  "lab-7/",
			section: "evidence",
			file:    "a.txt",
			want:    "lab-7/case_042/evidence/a.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &S3Uploader{prefix: tt.prefix}
			got := u.objectKey(forensic.CaseNumber("042"), tt.section, tt.file)
			if got != tt.want {
				t.Errorf("objectKey() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	cfg := config.UploadConfig{Region: "us-east-1"}
	if _, err := NewS3Uploader(context.Background(), cfg, forensic.NewNopLogger()); err == nil {
		t.Fatal("NewS3Uploader() expected error for missing bucket")
	}
}
