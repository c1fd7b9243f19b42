package sink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"traffic-sim-registration-api-server/internal/registration"
	"traffic-sim-registration-api-server/internal/s3"
)

// S3PictureSink copies the profile picture of a submitted record to S3 and
// logs the object URL. Records without a picture pass through untouched.
type S3PictureSink struct {
	Uploader *s3.Uploader
	Logger   *slog.Logger
}

func NewS3PictureSink(uploader *s3.Uploader, logger *slog.Logger) *S3PictureSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &S3PictureSink{Uploader: uploader, Logger: logger}
}

func (s *S3PictureSink) Name() string { return "s3-picture" }

func (s *S3PictureSink) Emit(ctx context.Context, rec registration.Record) error {
	if rec.ProfilePicture == "" {
		return nil
	}
	objectKey := fmt.Sprintf("profile-pictures/%s", strings.ToLower(rec.RecordID))
	url, err := s.Uploader.UploadDataURL(ctx, rec.ProfilePicture, objectKey)
	if err != nil {
		return fmt.Errorf("failed to upload profile picture for %s: %w", rec.RecordID, err)
	}
	s.Logger.Info("profile picture uploaded", "recordID", rec.RecordID, "url", url)
	return nil
}
