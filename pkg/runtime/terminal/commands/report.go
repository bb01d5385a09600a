package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/assessment-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// S3SinkFactory opens the report bucket
type S3SinkFactory func(ctx context.Context, region, bucket, prefix string) (export.Sink, error)

type ReportCmd struct {
	format     string
	outputPath string
	upload     bool
	flags      *GlobalFlags
	service    report.Service
	newS3Sink  S3SinkFactory
}

func NewReportCmd(service report.Service, flags *GlobalFlags, newS3Sink S3SinkFactory) *cobra.Command {
	rc := &ReportCmd{service: service, flags: flags, newS3Sink: newS3Sink}
	cmd := &cobra.Command{
		Use:   "report <assessment.json|assessment.yaml|->",
		Short: "Generate a clinical assessment report",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.format, "format", "f", string(export.FormatText), "Output format: text or json")
	cmd.Flags().StringVarP(&rc.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&rc.upload, "s3", false, "Upload the report to the configured S3 bucket")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	format, err := export.ParseFormat(rc.format)
	if err != nil {
		return err
	}
	req, err := rc.flags.Request()
	if err != nil {
		return err
	}

	data, err := readAssessment(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	rep, err := rc.service.Generate(ctx, data, req)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	logger.Debug().
		Str("report", rep.ID).
		Int("sections", len(rep.Sections)).
		Int("invalid", rep.InvalidSections()).
		Msg("report generated")

	sink, closeSink, err := rc.sink(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSink()

	return export.NewReporter(sink, format).Handle(ctx, &rep)
}

func (rc *ReportCmd) sink(ctx context.Context, cmd *cobra.Command) (export.Sink, func(), error) {
	noop := func() {}

	if rc.upload {
		s3cfg := rc.flags.Settings().S3
		if s3cfg.Bucket == "" {
			return nil, noop, fmt.Errorf("--s3 requires s3.bucket to be configured (ATLAS_S3_BUCKET)")
		}
		sink, err := rc.newS3Sink(ctx, s3cfg.Region, s3cfg.Bucket, s3cfg.Prefix)
		if err != nil {
			return nil, noop, err
		}
		return sink, noop, nil
	}

	if rc.outputPath != "" {
		f, err := os.Create(rc.outputPath)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create output file: %w", err)
		}
		return export.NewWriterSink(f), func() { _ = f.Close() }, nil
	}

	return export.NewWriterSink(cmd.OutOrStdout()), noop, nil
}
