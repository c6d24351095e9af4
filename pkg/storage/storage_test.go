package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, base, ext string
	}{
		{"photo.JPG", "photo", ".jpg"},
		{"my file (1).png", "my_file__1_", ".png"},
		{"../../etc/passwd", "passwd", ""},
		{`C:\Users\x\pic.webp`, "pic", ".webp"},
		{"", "upload", ""},
	}
	for _, tt := range tests {
		base, ext := splitName(tt.in)
		if base != tt.base || ext != tt.ext {
			t.Errorf("splitName(%q): got %q %q, want %q %q", tt.in, base, ext, tt.base, tt.ext)
		}
	}
}

func TestNames(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := timestampName("a b.png", now); got != "1700000000000_a_b.png" {
		t.Errorf("timestampName: got %q", got)
	}
	local := localName("a b.png", now)
	if !regexp.MustCompile(`^a_b1700000000000-\d{9}\.png$`).MatchString(local) {
		t.Errorf("localName: got %q", local)
	}
	if u := uuidName("uploads/", "x.MP4"); !strings.HasPrefix(u, "uploads/") || !strings.HasSuffix(u, ".mp4") {
		t.Errorf("uuidName: got %q", u)
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	key := s.ObjectName("banner.png")
	url, err := s.Upload(ctx, key, strings.NewReader("png"), 3, "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if want := "http://localhost:8080/uploads/" + key; url != want {
		t.Errorf("url: got %q, want %q", url, want)
	}
	b, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil || string(b) != "png" {
		t.Fatalf("stored file: %q %v", b, err)
	}

	if err := s.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, key)); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}
	if err := s.Delete(ctx, url); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), "http://h/uploads/..%2F..%2Fsecret"); err == nil {
		t.Error("traversal accepted")
	}
	if _, err := s.Upload(context.Background(), "../x", strings.NewReader(""), 0, ""); err == nil {
		t.Error("traversal upload accepted")
	}
}

type fakeS3 struct {
	puts    []string
	deletes []string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Storage{client: fake, bucket: "media", publicURL: "https://cdn.example.org"}
	ctx := context.Background()

	url, err := s.Upload(ctx, "uploads/a.png", strings.NewReader("x"), -1, "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://cdn.example.org/uploads/a.png" {
		t.Errorf("url: got %q", url)
	}
	if err := s.Delete(ctx, url); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "https://elsewhere.org/uploads/a.png"); err != nil {
		t.Fatal(err)
	}
	if len(fake.deletes) != 1 || fake.deletes[0] != "uploads/a.png" {
		t.Errorf("deletes: got %v", fake.deletes)
	}
}
