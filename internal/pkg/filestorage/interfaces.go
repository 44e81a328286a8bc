package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for attachment blob storage. Stored paths
// are relative (e.g. "notes/<uuid>.pdf") and act as opaque references kept on
// the note record.
type FileStorage interface {
	// SaveFile saves a file under the storage root and returns its stored path.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file under the given subdirectory.
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file. Deleting a missing file is not an error.
	DeleteFile(storedPath string) error

	// GetFullPath resolves a stored path to an absolute filesystem path.
	GetFullPath(storedPath string) string
}
