package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkdesk/internal/config"
	"checkdesk/internal/csvexport"
	"checkdesk/internal/domain"
	"checkdesk/internal/extract"
	"checkdesk/internal/port"
	"checkdesk/internal/vision"
	"checkdesk/internal/xlsxexport"
)

// CheckUploadInput is the DTO for check upload requests.
type CheckUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// CheckUpdateInput is the DTO for manual check edits. It fully replaces
// the mutable fields of a record; a nil field clears the stored value.
// An omitted Status defaults to parsed rather than being recomputed from
// the edited fields — long-standing behavior the dashboard relies on.
type CheckUpdateInput struct {
	CheckNumber *string
	Date        *string
	Amount      *float64
	Memo        *string
	Payor       *string
	Payee       *string
	Status      *domain.ReviewStatus
}

// CheckService defines the check record management contract.
type CheckService interface {
	Upload(ctx context.Context, input CheckUploadInput) (*domain.Check, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Check, error)
	Update(ctx context.Context, id uuid.UUID, input CheckUpdateInput) (*domain.Check, error)
	List(ctx context.Context, filter port.CheckFilter, offset, limit int) ([]domain.Check, int, error)
	ExportCSV(ctx context.Context, filter port.CheckFilter, w io.Writer) error
	ExportXLSX(ctx context.Context, filter port.CheckFilter, w io.Writer) error
}

type checkService struct {
	checkRepo port.CheckRepository
	storage   port.ObjectStorage
	vision    port.VisionClient
	s3Cfg     *config.S3Config
	uploadCfg *config.UploadConfig
}

// NewCheckService creates a new CheckService implementation. storage may
// be nil when no S3 bucket is configured; image URLs then fall back to
// self-contained data: URIs.
func NewCheckService(
	checkRepo port.CheckRepository,
	storage port.ObjectStorage,
	visionClient port.VisionClient,
	s3Cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
) CheckService {
	return &checkService{
		checkRepo: checkRepo,
		storage:   storage,
		vision:    visionClient,
		s3Cfg:     s3Cfg,
		uploadCfg: uploadCfg,
	}
}

// Upload runs the full extraction pipeline: ingest the image, obtain a
// vision-model completion, isolate and validate the JSON payload, classify
// the review status, and persist the record. Any stage failure aborts the
// whole upload; no partial record is persisted. An image already uploaded
// to storage is left behind when a later stage fails.
func (s *checkService) Upload(ctx context.Context, input CheckUploadInput) (*domain.Check, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	imageType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	imageBytes, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	// Magic-byte content type detection
	sniffLen := len(imageBytes)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detectedType := http.DetectContentType(imageBytes[:sniffLen])
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	checkID := uuid.New()
	contentType := domain.AllowedImageTypes[imageType]

	imageURL, err := s.ingestImage(ctx, checkID, input.Header.Filename, contentType, imageBytes)
	if err != nil {
		return nil, err
	}

	log.Printf("checkService.Upload: extracting fields from %s (%s, %d bytes)",
		input.Header.Filename, contentType, input.Header.Size)

	completion, err := s.vision.Complete(ctx, port.CompletionInput{
		ImageURL: imageURL,
		Prompt:   vision.BuildCheckPrompt(),
	})
	if err != nil {
		log.Printf("checkService.Upload: vision completion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrModelFailure, err)
	}

	raw, err := extract.ExtractJSON(completion)
	if err != nil {
		log.Printf("checkService.Upload: %v", err)
		return nil, err
	}

	cand, err := extract.ValidateCandidate(raw)
	if err != nil {
		log.Printf("checkService.Upload: %v", err)
		return nil, err
	}

	check := &domain.Check{
		ID:          checkID,
		ImageURL:    imageURL,
		CheckNumber: cand.CheckNumber,
		Date:        cand.Date,
		Amount:      cand.Amount,
		Memo:        cand.Memo,
		Payor:       cand.Payor,
		Payee:       cand.Payee,
		Status:      extract.Classify(cand),
	}

	if err := s.checkRepo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("creating check record: %w", err)
	}
	return check, nil
}

// ingestImage returns a durable reference URL for the uploaded image:
// an object-storage URL when a bucket is configured, otherwise a
// self-contained data: URI.
func (s *checkService) ingestImage(ctx context.Context, checkID uuid.UUID, filename, contentType string, imageBytes []byte) (string, error) {
	if s.storage == nil || s.s3Cfg.Bucket == "" {
		encoded := base64.StdEncoding.EncodeToString(imageBytes)
		return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
	}

	key := fmt.Sprintf("checks/%s/%s", checkID, filename)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(imageBytes),
		ContentType: contentType,
		Size:        int64(len(imageBytes)),
	})
	if err != nil {
		log.Printf("checkService.ingestImage: S3 upload failed for check %s: %v", checkID, err)
		return "", domain.ErrUploadFailed
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning image URL: %w", err)
	}
	return url, nil
}

func (s *checkService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Check, error) {
	return s.checkRepo.GetByID(ctx, id)
}

func (s *checkService) Update(ctx context.Context, id uuid.UUID, input CheckUpdateInput) (*domain.Check, error) {
	check, err := s.checkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var date *time.Time
	if input.Date != nil {
		d, ok := extract.ParseDate(*input.Date)
		if !ok {
			return nil, &extract.ValidationError{Violations: []extract.FieldViolation{{
				Field:  "date",
				Detail: fmt.Sprintf("not a parseable calendar date: %q", *input.Date),
			}}}
		}
		date = &d
	}

	if input.Amount != nil && *input.Amount < 0 {
		return nil, &extract.ValidationError{Violations: []extract.FieldViolation{{
			Field:  "amount",
			Detail: fmt.Sprintf("must be non-negative, got %v", *input.Amount),
		}}}
	}

	status := domain.StatusParsed
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		status = *input.Status
	}

	check.CheckNumber = input.CheckNumber
	check.Date = date
	check.Amount = input.Amount
	check.Memo = input.Memo
	check.Payor = input.Payor
	check.Payee = input.Payee
	check.Status = status

	if err := s.checkRepo.Update(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (s *checkService) List(ctx context.Context, filter port.CheckFilter, offset, limit int) ([]domain.Check, int, error) {
	return s.checkRepo.List(ctx, filter, offset, limit)
}

func (s *checkService) ExportCSV(ctx context.Context, filter port.CheckFilter, w io.Writer) error {
	checks, err := s.checkRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteChecks(checks); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *checkService) ExportXLSX(ctx context.Context, filter port.CheckFilter, w io.Writer) error {
	checks, err := s.checkRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}
	return xlsxexport.Write(w, checks)
}
