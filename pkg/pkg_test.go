package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "rulex" {
		t.Errorf("expected Name to be %q, got %q", "rulex", Name)
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)
	if !semver.MatchString(Version()) {
		t.Errorf("expected semantic version, got %q", Version())
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("expected at least one author")
	}

	for _, a := range Author {
		if a.Name == "" || a.Email == "" {
			t.Errorf("expected complete author info, got %+v", a)
		}
	}
}

func TestUserDir(t *testing.T) {
	got := userDir(func() (string, error) { return "/base", nil }, ".config")
	if want := filepath.Join("/base", Prefix()); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	t.Setenv("HOME", "/home/someone")

	got = userDir(func() (string, error) { return "", os.ErrNotExist }, ".cache")
	if want := filepath.Join("/home/someone", ".cache", Prefix()); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
