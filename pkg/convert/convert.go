package convert

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/radiofrance/testlog2junit/internal/logger"
	"github.com/radiofrance/testlog2junit/pkg/report"
	"github.com/radiofrance/testlog2junit/pkg/testlog"
	"github.com/radiofrance/testlog2junit/pkg/upload"
)

// Uploader publishes a local file to a remote location.
type Uploader interface {
	UploadFile(ctx context.Context, filePath, targetPath string) error
}

// UploaderFactory creates the Uploader used when a bucket is configured.
type UploaderFactory func(ctx context.Context, cfg S3Config) (Uploader, error)

// Converter runs a log to JUnit XML conversion and prints its progress to Out.
type Converter struct {
	Out         io.Writer
	NewUploader UploaderFactory
}

func New(out io.Writer) *Converter {
	return &Converter{
		Out:         out,
		NewUploader: newS3Uploader,
	}
}

func newS3Uploader(ctx context.Context, cfg S3Config) (Uploader, error) {
	uploader, err := upload.NewS3Uploader(ctx, cfg.Region, cfg.Bucket)
	if err != nil {
		return nil, err
	}

	return uploader, nil
}

// Run validates cfg, parses the whole input log, then writes the report. Nothing is written
// when the configuration or the log is invalid.
func (c *Converter) Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return fmt.Errorf("can't resolve output path %s: %w", cfg.Output, err)
	}

	_, _ = fmt.Fprintf(c.Out, ">>> Writing xml file: %s\n", output)

	logger.Debugf("Parsing test log %s", cfg.Input)
	records, err := testlog.ParseFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to parse test log: %w", err)
	}

	builder := report.NewBuilder(report.Options{
		Name:        cfg.SuiteName,
		StripColors: cfg.StripColors,
	})
	builder.AddAll(records)

	if err := builder.WriteFile(output); err != nil {
		return err
	}

	logger.Infof("%d test(s) written to %s", len(records), output)

	if cfg.Summary {
		report.RenderSummary(c.Out, records)
	}

	if cfg.S3.Bucket != "" {
		if err := c.publish(ctx, cfg.S3, output); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(c.Out, "Finished writing the xUnit-style xml file")

	return nil
}

func (c *Converter) publish(ctx context.Context, cfg S3Config, reportPath string) error {
	uploader, err := c.NewUploader(ctx, cfg)
	if err != nil {
		return fmt.Errorf("can't create report uploader: %w", err)
	}

	key := path.Join(cfg.Prefix, filepath.Base(reportPath))
	if err := uploader.UploadFile(ctx, reportPath, key); err != nil {
		return fmt.Errorf("can't publish report to s3://%s/%s: %w", cfg.Bucket, key, err)
	}

	logger.Infof("Report published to s3://%s/%s", cfg.Bucket, key)

	return nil
}
