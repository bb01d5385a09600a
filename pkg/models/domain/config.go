package domain

import (
	"fmt"
	"time"
)

// ReportProfile is a named set of report generation options
type ReportProfile struct {
	Name         string
	DetailLevel  DetailLevel
	Agents       []string
	AgentTimeout time.Duration
}

func (p ReportProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.DetailLevel)
}
