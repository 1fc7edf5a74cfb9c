package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStorage struct {
	calls int
	path  string
}

func (s *recordingStorage) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	s.calls++
	s.path = "http://localhost:9000/listing-images/listings/" + fileName
	return s.path, nil
}

func TestAssetUsecase_AcceptValidPNG(t *testing.T) {
	storage := &recordingStorage{}
	uc := NewAssetUsecase(storage, testLogger())

	ref, err := uc.Accept(context.Background(), Upload{
		FileName:    "chair.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x1}, 500*1024), // 500 KiB
	})
	require.NoError(t, err)
	assert.Equal(t, "chair.png", ref.FileName)
	assert.Equal(t, storage.path, ref.FilePath)
	assert.Equal(t, 1, storage.calls)
}

func TestAssetUsecase_RejectsOversizedUpload(t *testing.T) {
	storage := &recordingStorage{}
	uc := NewAssetUsecase(storage, testLogger())

	_, err := uc.Accept(context.Background(), Upload{
		FileName:    "huge.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x1}, 2<<20), // 2 MiB
	})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Zero(t, storage.calls, "storage must not be touched on rejection")
}

func TestAssetUsecase_RejectsUnsupportedType(t *testing.T) {
	storage := &recordingStorage{}
	uc := NewAssetUsecase(storage, testLogger())

	_, err := uc.Accept(context.Background(), Upload{
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("not an image"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	assert.Zero(t, storage.calls)
}

func TestAssetUsecase_RejectsEmptyUpload(t *testing.T) {
	storage := &recordingStorage{}
	uc := NewAssetUsecase(storage, testLogger())

	_, err := uc.Accept(context.Background(), Upload{FileName: "empty.png", ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrNoFileProvided)
	assert.Zero(t, storage.calls)
}

func TestAssetUsecase_ContentTypeNormalization(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"image/jpeg", false},
		{"image/jpg", false},
		{"IMAGE/PNG", false},
		{"image/gif", false},
		{"image/png; charset=binary", false},
		{"image/webp", true},
		{"application/pdf", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			uc := NewAssetUsecase(&recordingStorage{}, testLogger())
			_, err := uc.Accept(context.Background(), Upload{
				FileName:    "file.bin",
				ContentType: tt.contentType,
				Data:        []byte{0x1, 0x2},
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMediaType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssetUsecase_BoundarySize(t *testing.T) {
	uc := NewAssetUsecase(&recordingStorage{}, testLogger())

	// Exactly 1 MiB passes.
	_, err := uc.Accept(context.Background(), Upload{
		FileName:    "exact.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x1}, MaxAssetSize),
	})
	assert.NoError(t, err)

	// One byte over is rejected.
	_, err = uc.Accept(context.Background(), Upload{
		FileName:    "over.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x1}, MaxAssetSize+1),
	})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}
