// Package service contains the application's business logic.
package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"investkoree/internal/models"
	"investkoree/internal/observability"
	"investkoree/internal/storage"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const maxUploadFileSize = 5 * 1024 * 1024

// Multipart field names and their per-field file limits.
const (
	FieldBusinessPicture = "businessPicture"
	FieldNidCopy         = "nidCopy"
	FieldTinCopy         = "tinCopy"
	FieldTaxCopy         = "taxCopy"
	FieldTradeLicense    = "tradeLicense"
	FieldBankStatement   = "bankStatement"
	FieldSecurityFile    = "securityFile"
	FieldFinancialFile   = "financialFile"
)

var fieldLimits = map[string]int{
	FieldBusinessPicture: 10,
	FieldNidCopy:         1,
	FieldTinCopy:         1,
	FieldTaxCopy:         1,
	FieldTradeLicense:    1,
	FieldBankStatement:   1,
	FieldSecurityFile:    1,
	FieldFinancialFile:   1,
}

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
}

// FileSet holds every accepted upload, fully buffered in memory, keyed by
// field name in submission order.
type FileSet struct {
	Files map[string][]storage.BufferedFile
}

// First returns the single buffered file for a max-count-1 field, or nil.
func (fs *FileSet) First(field string) *storage.BufferedFile {
	if fs == nil {
		return nil
	}
	if files := fs.Files[field]; len(files) > 0 {
		return &files[0]
	}
	return nil
}

// Empty reports whether no field carried any file.
func (fs *FileSet) Empty() bool {
	if fs == nil {
		return true
	}
	for _, files := range fs.Files {
		if len(files) > 0 {
			return false
		}
	}
	return true
}

// StoredFiles carries the durable URLs produced by persisting a FileSet.
type StoredFiles struct {
	BusinessPictures  []string
	NidFile           string
	TinFile           string
	TaxFile           string
	TradeLicenseFile  string
	BankStatementFile string
	SecurityFile      string
	FinancialFile     string
}

// Empty reports whether nothing was stored.
func (sf *StoredFiles) Empty() bool {
	if sf == nil {
		return true
	}
	return len(sf.BusinessPictures) == 0 &&
		sf.NidFile == "" && sf.TinFile == "" && sf.TaxFile == "" &&
		sf.TradeLicenseFile == "" && sf.BankStatementFile == "" &&
		sf.SecurityFile == "" && sf.FinancialFile == ""
}

// UploadService validates multipart uploads against the allow-list and size
// caps, then hands accepted buffers to a FileStore.
type UploadService struct {
	store storage.FileStore
}

func NewUploadService(store storage.FileStore) *UploadService {
	return &UploadService{store: store}
}

// Collect validates every file in the form against the field limits, the
// 5 MB cap and the MIME allow-list, and buffers accepted files in memory.
// Validation happens before any durable write: a bad file rejects the whole
// submission with nothing persisted. Unknown field names are ignored, the
// way the production frontend relies on.
func (s *UploadService) Collect(form *multipart.Form) (*FileSet, error) {
	fs := &FileSet{Files: make(map[string][]storage.BufferedFile)}
	if form == nil {
		return fs, nil
	}

	for field, limit := range fieldLimits {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		if len(headers) > limit {
			observability.UploadRejections.WithLabelValues("too_many_files").Inc()
			return nil, models.NewValidationError(
				fmt.Sprintf("Too many files for field %q (max %d)", field, limit))
		}
		for _, header := range headers {
			buffered, err := s.readOne(field, header)
			if err != nil {
				return nil, err
			}
			fs.Files[field] = append(fs.Files[field], *buffered)
		}
	}
	return fs, nil
}

func (s *UploadService) readOne(field string, header *multipart.FileHeader) (*storage.BufferedFile, error) {
	if header.Size > maxUploadFileSize {
		observability.UploadRejections.WithLabelValues("too_large").Inc()
		return nil, models.NewValidationError(
			fmt.Sprintf("File %q too large (max %dMB)", header.Filename, maxUploadFileSize/(1024*1024)))
	}

	f, err := header.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer func() { _ = f.Close() }()

	// Size header can lie; cap the actual read too.
	content, err := io.ReadAll(io.LimitReader(f, maxUploadFileSize+1))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(content) > maxUploadFileSize {
		observability.UploadRejections.WithLabelValues("too_large").Inc()
		return nil, models.NewValidationError(
			fmt.Sprintf("File %q too large (max %dMB)", header.Filename, maxUploadFileSize/(1024*1024)))
	}
	if len(content) == 0 {
		observability.UploadRejections.WithLabelValues("empty").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File %q is empty", header.Filename))
	}

	contentType := resolveContentType(header, content)
	if _, ok := allowedMIMETypes[contentType]; !ok {
		observability.UploadRejections.WithLabelValues("bad_type").Inc()
		return nil, models.NewValidationError(
			fmt.Sprintf("File type %q not allowed for %q", contentType, header.Filename))
	}

	// Image payloads must actually decode, not just sniff as an image.
	if strings.HasPrefix(contentType, "image/") {
		if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
			observability.UploadRejections.WithLabelValues("bad_image").Inc()
			return nil, models.NewValidationError(
				fmt.Sprintf("File %q is not a valid image", header.Filename))
		}
	}

	return &storage.BufferedFile{
		Field:       field,
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// Store persists a buffered FileSet through the FileStore and returns the
// resulting URL fields, shaped the way the post models carry them.
func (s *UploadService) Store(ctx context.Context, fs *FileSet) (*StoredFiles, error) {
	stored := &StoredFiles{}
	if fs == nil {
		return stored, nil
	}

	for _, file := range fs.Files[FieldBusinessPicture] {
		url, err := s.store.Save(ctx, file)
		if err != nil {
			return nil, models.NewPersistenceError("file upload", err)
		}
		stored.BusinessPictures = append(stored.BusinessPictures, url)
	}

	singles := []struct {
		field string
		dest  *string
	}{
		{FieldNidCopy, &stored.NidFile},
		{FieldTinCopy, &stored.TinFile},
		{FieldTaxCopy, &stored.TaxFile},
		{FieldTradeLicense, &stored.TradeLicenseFile},
		{FieldBankStatement, &stored.BankStatementFile},
		{FieldSecurityFile, &stored.SecurityFile},
		{FieldFinancialFile, &stored.FinancialFile},
	}
	for _, single := range singles {
		file := fs.First(single.field)
		if file == nil {
			continue
		}
		url, err := s.store.Save(ctx, *file)
		if err != nil {
			return nil, models.NewPersistenceError("file upload", err)
		}
		*single.dest = url
	}
	return stored, nil
}

// resolveContentType prefers sniffed content over the client-declared header.
// Office formats sniff as zip/octet-stream, so for those the declared type is
// trusted when it is on the allow-list.
func resolveContentType(header *multipart.FileHeader, content []byte) string {
	detected := normalizeMIME(http.DetectContentType(content))
	if _, ok := allowedMIMETypes[detected]; ok {
		return detected
	}
	declared := normalizeMIME(header.Header.Get("Content-Type"))
	if _, ok := allowedMIMETypes[declared]; ok &&
		(detected == "application/zip" || detected == "application/octet-stream" || strings.HasPrefix(detected, "text/plain")) {
		return declared
	}
	return detected
}

func normalizeMIME(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
