package domain

import "time"

// StepStatus is the outcome of one dispatch step.
type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// Dispatch step identifiers, in pipeline order.
const (
	StepCRM       = "crm"
	StepDeal      = "deal"
	StepMessaging = "messaging"
	StepTasking   = "tasking"
	StepTicketing = "ticketing"
	StepQuoting   = "quoting"
)

// StepResult records the outcome of a single collaborator call.
type StepResult struct {
	Status StepStatus `json:"status"`
	// Ref is the external record identifier, when the step produced one.
	Ref    string `json:"ref,omitempty"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Succeeded builds a successful step result.
func Succeeded(ref, detail string) StepResult {
	return StepResult{Status: StepSucceeded, Ref: ref, Detail: detail}
}

// Failed builds a failed step result carrying the error message.
func Failed(err error) StepResult {
	return StepResult{Status: StepFailed, Error: err.Error()}
}

// Skipped builds a policy-skipped step result.
func Skipped(reason string) StepResult {
	return StepResult{Status: StepSkipped, Detail: reason}
}

// Report aggregates every dispatch step outcome for one processed lead.
// Success is false only when the CRM identity step failed; any other step
// failure leaves the pipeline result successful but individually reported.
type Report struct {
	Success     bool                  `json:"success"`
	Email       string                `json:"email"`
	Score       int                   `json:"score"`
	Breakdown   map[string]int        `json:"breakdown,omitempty"`
	Category    Category              `json:"category"`
	Territory   TerritoryAssignment   `json:"territory"`
	Steps       map[string]StepResult `json:"stepResults"`
	ProcessedAt time.Time             `json:"processedAt"`
}
