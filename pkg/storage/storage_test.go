package storage

import "testing"

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/book/book_cover/dune.webp", "book/book_cover/dune"},
		{"https://res.cloudinary.com/demo/image/upload/book/book_cover/dune.webp", "book/book_cover/dune"},
		{"https://res.cloudinary.com/demo/image/upload/vintage/cover.png", "vintage/cover"},
		{"https://example.com/covers/dune.png", ""},
		{"https://res.cloudinary.com/demo/image/upload/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := extractPublicID(tt.url); got != tt.want {
				t.Errorf("extractPublicID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestS3ObjectKeyRoundTrip(t *testing.T) {
	s := &s3Storage{bucket: "covers", region: "eu-west-1"}

	url := s.objectURL("book/book_cover/abc.png")
	if url != "https://covers.s3.eu-west-1.amazonaws.com/book/book_cover/abc.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if key := s.objectKey(url); key != "book/book_cover/abc.png" {
		t.Errorf("objectKey() = %q", key)
	}
	if key := s.objectKey("https://other.s3.eu-west-1.amazonaws.com/x.png"); key != "" {
		t.Errorf("foreign bucket should yield empty key, got %q", key)
	}
}

func TestS3Owns(t *testing.T) {
	s := &s3Storage{bucket: "covers", region: "eu-west-1"}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://covers.s3.eu-west-1.amazonaws.com/book/book_cover/abc.png", true},
		{"https://covers.s3.eu-west-1.amazonaws.com/", false},
		{"https://covers.s3.us-east-1.amazonaws.com/book/book_cover/abc.png", false},
		{"https://other.s3.eu-west-1.amazonaws.com/abc.png", false},
		{"https://images.example.org/abc.png", false},
	}
	for _, tt := range tests {
		if got := s.Owns(tt.url); got != tt.want {
			t.Errorf("Owns(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestCloudinaryOwns(t *testing.T) {
	store, err := NewCloudinaryStorage(CloudinaryOptions{CloudName: "demo", APIKey: "key", APISecret: "secret", UploadFolder: "bookcommunity"})
	if err != nil {
		t.Fatalf("NewCloudinaryStorage() error = %v", err)
	}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/bookcommunity/book/book_cover/dune.webp", true},
		{"https://res.cloudinary.com/demo/image/upload/other/dune.webp", false},
		{"https://res.cloudinary.com/someone/image/upload/v1/bookcommunity/book/book_cover/dune.webp", false},
		{"https://images.example.org/demo/image/upload/bookcommunity/dune.webp", false},
		{"not a url %zz", false},
	}
	for _, tt := range tests {
		if got := store.Owns(tt.url); got != tt.want {
			t.Errorf("Owns(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
