package response

import (
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
)

type WizardResponse struct {
	Sport      string                `json:"sport"`
	Step       form.Step             `json:"step"`
	StepName   string                `json:"step_name"`
	TotalSteps int                   `json:"total_steps"`
	Data       domain.FormData       `json:"data"`
	Errors     form.ValidationErrors `json:"errors,omitempty"`
	ShowErrors bool                  `json:"show_errors"`
	Fee        int64                 `json:"fee"`
}

func NewWizardResponse(w *form.Wizard) WizardResponse {
	resp := WizardResponse{
		Sport:      w.Sport,
		Step:       w.Step,
		StepName:   w.Step.String(),
		TotalSteps: int(form.StepDocuments),
		Data:       w.Data,
		ShowErrors: w.ShowErrors,
		Fee:        domain.MembershipFee(w.Sport, w.Data.PersonalInfo.MembershipType),
	}
	if w.ShowErrors {
		resp.Errors = w.Errors
	}

	return resp
}

type MemberApplicationsResponse struct {
	Applications []domain.Application    `json:"applications"`
	Stats        domain.ApplicationStats `json:"stats"`
}

type AdminApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
	Count        int                  `json:"count"`
}
