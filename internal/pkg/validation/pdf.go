package validation

import (
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/oguzk/noteshub/internal/pkg/apperrors"
)

const (
	// MaxAttachmentSize is the fixed upload ceiling for note PDFs.
	MaxAttachmentSize = 10 * 1024 * 1024 // 10 MB

	// sniffLen is how much of the file is read for content detection.
	sniffLen = 3072
)

// ValidateNotePDF checks that an uploaded attachment is a real PDF under the
// size ceiling. Detection is content based; the filename extension is never
// consulted. Runs before any blob or record is written.
func ValidateNotePDF(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.ErrAttachmentMissing
	}

	if fileHeader.Size > MaxAttachmentSize {
		return apperrors.ErrAttachmentTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "cannot open uploaded file")
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "cannot read uploaded file")
	}

	if !mimetype.Detect(head[:n]).Is("application/pdf") {
		return apperrors.ErrAttachmentNotPDF
	}

	return nil
}
