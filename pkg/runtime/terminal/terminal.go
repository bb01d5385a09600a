package terminal

import (
	"io"
	"os"

	"github.com/de-tools/assessment-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/assessment-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	service  report.Service
	reporter *ValidationReporter
	flags    *commands.GlobalFlags
	rootCmd  *cobra.Command
	opts     Options
}

// Options contain configuration for the CLI
type Options struct {
	Service report.Service
	Output  io.Writer
	Input   io.Reader
	// S3Sink opens the export bucket (default: AWS default credential chain)
	S3Sink commands.S3SinkFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.S3Sink == nil {
		opts.S3Sink = export.NewS3SinkFromConfig
	}
	if opts.Service == nil {
		opts.Service = report.NewService(report.DefaultRegistry())
	}

	cli := &CLI{
		service:  opts.Service,
		reporter: NewValidationReporter(opts.Output),
		flags:    &commands.GlobalFlags{},
		opts:     opts,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mainly for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Clinical assessment report generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.flags.Load(cmd)
		},
	}
	cmd.SetOut(cli.opts.Output)
	cmd.SetIn(cli.opts.Input)
	cli.flags.Bind(cmd)

	cmd.AddCommand(commands.NewReportCmd(cli.service, cli.flags, cli.opts.S3Sink))
	cmd.AddCommand(commands.NewValidateCmd(cli.service, cli.flags, cli.reporter))
	cmd.AddCommand(commands.NewAgentsCmd(cli.service))

	return cmd
}
