package form

import (
	"errors"

	"github.com/blwclub/membership-portal/internal/domain"
)

var ErrNotFinalStep = errors.New("the application can only be submitted from the documents step")

// Wizard is the state of one in-progress application: the current step,
// the collected data and the errors from the last failed transition.
type Wizard struct {
	Sport      string           `json:"sport"`
	Step       Step             `json:"step"`
	Data       domain.FormData  `json:"data"`
	Errors     ValidationErrors `json:"errors,omitempty"`
	ShowErrors bool             `json:"show_errors"`
}

// NewWizard starts at the first step with personal info pre-filled from the
// user's account and profile.
func NewWizard(sport string, user domain.User) *Wizard {
	personal := domain.PersonalInfo{
		Name:           user.Name,
		MembershipType: domain.MembershipOutsider,
		Contact:        domain.Contact{Email: user.Email},
	}
	if p := user.Profile; p != nil {
		if p.Name != "" {
			personal.Name = p.Name
		}
		personal.Address = p.Address
		personal.Contact.Office = p.Contact.Office
		personal.Contact.Residence = p.Contact.Residence
		personal.Contact.Mobile = p.Mobile
		personal.Profession = p.Profession
		personal.Position = p.Position
		personal.Education = p.Education
		personal.DateOfBirth = p.DateOfBirth
	}

	return &Wizard{
		Sport: domain.NormalizeSport(sport),
		Step:  StepPersonalInfo,
		Data: domain.FormData{
			PersonalInfo:  personal,
			FamilyDetails: domain.FamilyDetails{Children: []domain.Relative{}},
			SportSpecific: domain.EmptySportSpecific(sport),
		},
		Errors: ValidationErrors{},
	}
}

// Next validates the current step and advances when it passes. On failure
// the step's errors are recorded and the wizard stays put.
func (w *Wizard) Next() bool {
	if errs := ValidateStep(w.Step, w.Sport, w.Data); len(errs) > 0 {
		w.Errors = ValidationErrors{w.Step: errs}
		w.ShowErrors = true
		return false
	}

	w.Errors = ValidationErrors{}
	w.ShowErrors = false
	if w.Step < StepDocuments {
		w.Step++
	}

	return true
}

func (w *Wizard) Previous() {
	if w.Step > StepPersonalInfo {
		w.Step--
	}
	w.ShowErrors = false
}

// Submit revalidates every step. On failure it records all errors, moves to
// the first failing step and returns the errors.
func (w *Wizard) Submit() (domain.FormData, error) {
	if w.Step != StepDocuments {
		return domain.FormData{}, ErrNotFinalStep
	}

	if all := ValidateAll(w.Sport, w.Data); !all.Empty() {
		w.Errors = all
		w.ShowErrors = true
		w.Step = all.FirstStep()
		return domain.FormData{}, all
	}

	w.Errors = ValidationErrors{}
	w.ShowErrors = false
	data := w.Data
	data.PersonalInfo.PANNumber = NormalizePAN(data.PersonalInfo.PANNumber)

	return data, nil
}

func (w *Wizard) SetPersonalInfo(p domain.PersonalInfo) {
	changed := changedFields(personalFields(w.Data.PersonalInfo), personalFields(p))
	w.Data.PersonalInfo = p
	w.clear(changed)
}

func (w *Wizard) SetFamilyDetails(f domain.FamilyDetails) {
	if f.Children == nil {
		f.Children = []domain.Relative{}
	}
	changed := changedFields(familyFields(w.Data.FamilyDetails), familyFields(f))
	w.Data.FamilyDetails = f
	w.clear(changed)
}

func (w *Wizard) SetSportSpecific(s domain.SportSpecific) {
	changed := changedFields(sportFields(w.Data.SportSpecific), sportFields(s))
	w.Data.SportSpecific = s
	w.clear(changed)
}

func (w *Wizard) SetDocuments(d domain.Documents) {
	changed := changedFields(documentFields(w.Data.Documents), documentFields(d))
	w.Data.Documents = d
	w.clear(changed)
}

func (w *Wizard) clear(fields []string) {
	if w.Errors == nil {
		w.Errors = ValidationErrors{}
		return
	}
	w.Errors.Clear(fields...)
}
