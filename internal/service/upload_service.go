package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/observability"
	"github.com/sanatech/marketing-api/internal/repository"
)

var (
	// ErrUploadMissing indicates the request carried no file part.
	ErrUploadMissing = errors.New("file is required")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
	Destroy(ctx context.Context, fileURL string) error
}

// UploadService validates content imagery and relays it to the CDN.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, adminID *uint) (dto.UploadResponse, error)
	Delete(ctx context.Context, imageURL string) error
}

type uploadService struct {
	storage FileStorage
	repo    repository.UploadRepository
	logger  zerolog.Logger
	maxSize int64
	tracer  trace.Tracer
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, repo repository.UploadRepository, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		repo:    repo,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		tracer:  otel.Tracer("github.com/sanatech/marketing-api/internal/service/upload"),
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader, adminID *uint) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "upload.relay")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	span.SetAttributes(attribute.Int64("upload.max_bytes", s.maxSize))

	payload, fileType, err := s.readAndCheck(span, file)
	if err != nil {
		return dto.UploadResponse{}, err
	}

	name := sanitizeFileName(file.Filename)
	digest := sha256.Sum256(payload)
	span.SetAttributes(
		attribute.String("upload.sanitized_name", name),
		attribute.Int64("upload.size_bytes", int64(len(payload))),
	)

	url, err := s.storage.Upload(ctx, name, bytes.NewReader(payload))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.UploadResponse{}, err
	}

	record := models.UploadRecord{
		AdminID:   adminID,
		FileName:  name,
		URL:       url,
		MimeType:  fileType,
		SizeBytes: int64(len(payload)),
		Checksum:  hex.EncodeToString(digest[:]),
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.UploadResponse{}, err
	}

	observability.UploadRequests().WithLabelValues(fileType).Inc()
	span.SetStatus(codes.Ok, "stored")

	s.logger.Info().
		Str("file_name", record.FileName).
		Str("mime_type", record.MimeType).
		Int64("size_bytes", record.SizeBytes).
		Msg("asset relayed")

	return dto.UploadResponse{
		URL:       url,
		SizeBytes: record.SizeBytes,
		MimeType:  record.MimeType,
		Checksum:  record.Checksum,
		FileName:  record.FileName,
	}, nil
}

// Delete removes a relayed asset from the CDN by its delivery URL. The local
// metadata row is cleaned up afterwards; a failure there is logged but does
// not undo the removal the caller asked for.
func (s *uploadService) Delete(ctx context.Context, imageURL string) error {
	ctx, span := s.tracer.Start(ctx, "upload.discard")
	defer span.End()

	span.SetAttributes(attribute.String("upload.url", imageURL))

	if err := s.storage.Destroy(ctx, imageURL); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return err
	}

	if err := s.repo.DeleteByURL(ctx, imageURL); err != nil {
		s.logger.Warn().Err(err).Str("url", imageURL).Msg("failed to drop upload record")
	}

	span.SetStatus(codes.Ok, "discarded")
	s.logger.Info().Str("url", imageURL).Msg("asset removed")
	return nil
}

// readAndCheck drains the multipart file into memory and enforces the size
// and type policy. The whole payload is buffered so the checksum and the CDN
// relay read the same bytes the sniffer saw.
func (s *uploadService) readAndCheck(span trace.Span, file *multipart.FileHeader) ([]byte, string, error) {
	if file == nil {
		span.RecordError(ErrUploadMissing)
		span.SetStatus(codes.Error, "validation failed")
		return nil, "", ErrUploadMissing
	}

	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return nil, "", ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return nil, "", err
	}
	defer handle.Close()

	// The size header is client supplied, so the limit is enforced again on
	// the actual stream.
	payload, err := io.ReadAll(io.LimitReader(handle, s.maxSize+1))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, "", err
	}
	if int64(len(payload)) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return nil, "", ErrUploadTooLarge
	}

	fileType := normalizeMime(mimetype.Detect(payload).String())
	span.SetAttributes(attribute.String("upload.detected_mime", fileType))
	if fileType != "image" && fileType != "application/pdf" {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrUploadTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return nil, "", ErrUploadTypeNotAllowed
	}

	return payload, fileType, nil
}

// sanitizeFileName lowercases the base name and replaces anything outside
// [a-z0-9_-] so the stored name is safe to use as a CDN public ID.
func sanitizeFileName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}

	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	base := strings.Trim(b.String(), "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}
	return base + ext
}

// normalizeMime collapses every image subtype into "image"; the policy does
// not distinguish between them.
func normalizeMime(m string) string {
	lower := strings.ToLower(strings.TrimSpace(m))
	if mediaType, _, found := strings.Cut(lower, ";"); found {
		lower = strings.TrimSpace(mediaType)
	}
	if strings.HasPrefix(lower, "image/") {
		return "image"
	}
	return lower
}
