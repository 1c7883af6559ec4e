// Package upload pushes evidence files and their digest files to S3 for
// offsite custody. It consumes the ledger read-only and performs no hashing
// of its own.
package upload

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/config"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

// S3Uploader uploads case evidence to an S3 bucket.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
	logger   forensic.Logger
}

// NewS3Uploader builds an uploader from the upload configuration. When an
// access key pair is provided it is used as static credentials; otherwise
// the default AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg config.UploadConfig, logger forensic.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("upload bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		logger:   logger,
	}, nil
}

// Result summarizes an upload run.
type Result struct {
	Uploaded int
	Failures []Failure
}

// Failure describes one object that could not be uploaded.
type Failure struct {
	File string
	Err  error
}

// UploadCase uploads every record's stored copy and digest file. A failed
// object does not abort the run; failures are collected in the result.
func (u *S3Uploader) UploadCase(ctx context.Context, caseNumber forensic.CaseNumber, records []*forensic.EvidenceRecord) (*Result, error) {
	result := &Result{}

	for _, r := range records {
		evidenceKey := u.objectKey(caseNumber, "evidence", r.StoredFilename)
		if err := u.uploadFile(ctx, r.StoredPath, evidenceKey); err != nil {
			result.Failures = append(result.Failures, Failure{File: r.StoredFilename, Err: err})
			u.logger.Error("upload failed", "file", r.StoredFilename, "error", err)
			continue
		}

		hashKey := u.objectKey(caseNumber, "hashes", filepath.Base(r.DigestPath))
		if err := u.uploadFile(ctx, r.DigestPath, hashKey); err != nil {
			result.Failures = append(result.Failures, Failure{File: filepath.Base(r.DigestPath), Err: err})
			u.logger.Error("upload failed", "file", r.DigestPath, "error", err)
			continue
		}

		result.Uploaded++
		u.logger.Info("uploaded", "file", r.StoredFilename, "key", evidenceKey)
	}

	return result, nil
}

// objectKey builds the S3 key for a case object:
// [prefix/]case_<NNN>/<section>/<name>.
func (u *S3Uploader) objectKey(caseNumber forensic.CaseNumber, section, name string) string {
	key := path.Join("case_"+caseNumber.String(), section, name)
	if u.prefix != "" {
		key = path.Join(u.prefix, key)
	}
	return key
}

func (u *S3Uploader) uploadFile(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &u.bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("uploading to s3://%s/%s: %w", u.bucket, key, err)
	}
	return nil
}
