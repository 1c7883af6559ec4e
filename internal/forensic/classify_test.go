package forensic_test

import (
	"testing"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

func TestCategoryForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want forensic.Category
	}{
		{".jpg", forensic.CategoryImage},
		{".JPEG", forensic.CategoryImage},
		{"png", forensic.CategoryImage},
		{".mp4", forensic.CategoryVideo},
		{".MKV", forensic.CategoryVideo},
		{".pdf", forensic.CategoryDocument},
		{".docx", forensic.CategoryDocument},
		{".txt", forensic.CategoryDocument},
		{".zip", forensic.CategoryArchive},
		{".7z", forensic.CategoryArchive},
		{".exe", forensic.CategoryUnknown},
		{"", forensic.CategoryUnknown},
		{".tar.gz", forensic.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := forensic.CategoryForExtension(tt.ext); got != tt.want {
				t.Errorf("CategoryForExtension(%q) = %s, want %s", tt.ext, got, tt.want)
			}
		})
	}
}

func TestNewCaseNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    forensic.CaseNumber
		wantErr bool
	}{
		{raw: "5", want: "005"},
		{raw: "042", want: "042"},
		{raw: "1234", want: "1234"},
		{raw: "", wantErr: true},
		{raw: "12a", wantErr: true},
		{raw: "case-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := forensic.NewCaseNumber(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewCaseNumber(%q) error = nil, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCaseNumber(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NewCaseNumber(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
