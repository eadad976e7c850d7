package storage

import (
	"context"
	"io"
)

// ImageStorage defines the contract for book cover storage providers.
type ImageStorage interface {
	// UploadImage uploads image from reader and returns its public URL.
	// folder is a logical folder in storage (e.g. "book/book_cover").
	UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteImage deletes image from storage using its URL.
	DeleteImage(ctx context.Context, fileURL string) error
	// Owns reports whether fileURL points at an object this storage uploaded.
	Owns(fileURL string) bool
}

const CoverFolder = "book/book_cover"
