package domain

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Attachment is a file attached to a contact, as listed by the
// integration API.
type Attachment struct {
	// ID is the file's identifier in the CRM.
	ID string `json:"id"`

	// Name is the file name.
	Name string `json:"name"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// UploadedAt is the upload timestamp as reported by the CRM.
	UploadedAt string `json:"uploadedAt"`
}

// MaxAttachmentSize is the largest file accepted for upload (10 MiB).
const MaxAttachmentSize = 10 * 1024 * 1024

// allowedExtensions lists the file types the CRM accepts.
var allowedExtensions = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {},
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
}

// IsAllowedFileType reports whether the file name carries an accepted
// extension.
func IsAllowedFileType(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := allowedExtensions[ext]
	return ok
}

// IsAllowedFileSize reports whether size fits under MaxAttachmentSize.
func IsAllowedFileSize(size int64) bool {
	return size <= MaxAttachmentSize
}

// FormatFileSize renders a byte count with 1024-based units, e.g.
// "1.5 KB". Zero renders as "0 Bytes".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	s := fmt.Sprintf("%.2f", value)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " " + units[i]
}
