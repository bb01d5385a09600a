package commands

import (
	"fmt"

	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

// ValidationPrinter renders validation results
type ValidationPrinter interface {
	Handle(results []report.AgentValidation) error
}

type ValidateCmd struct {
	flags   *GlobalFlags
	service report.Service
	printer ValidationPrinter
}

func NewValidateCmd(service report.Service, flags *GlobalFlags, printer ValidationPrinter) *cobra.Command {
	vc := &ValidateCmd{service: service, flags: flags, printer: printer}
	return &cobra.Command{
		Use:   "validate <assessment.json|assessment.yaml|->",
		Short: "Check an assessment against every agent's data requirements",
		Args:  cobra.ExactArgs(1),
		RunE:  vc.run,
	}
}

func (vc *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	req, err := vc.flags.Request()
	if err != nil {
		return err
	}

	data, err := readAssessment(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	results, err := vc.service.Validate(data, req)
	if err != nil {
		return err
	}
	if err := vc.printer.Handle(results); err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Result.IsValid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d agents rejected the assessment", invalid, len(results))
	}
	return nil
}
