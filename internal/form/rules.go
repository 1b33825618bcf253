package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/blwclub/membership-portal/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	emailExp     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileExp    = regexp.MustCompile(`^[0-9]{10}$`)
	aadharExp    = regexp.MustCompile(`^[0-9]{12}$`)
	panExp       = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	nonDigitsExp = regexp.MustCompile(`\D`)
)

// ValidMobile accepts exactly ten digits once separators are stripped.
func ValidMobile(s string) bool {
	return mobileExp.MatchString(nonDigitsExp.ReplaceAllString(s, ""))
}

func ValidAadhar(s string) bool {
	return aadharExp.MatchString(nonDigitsExp.ReplaceAllString(s, ""))
}

// ValidPAN matches the raw value; callers normalise with NormalizePAN first.
func ValidPAN(s string) bool {
	return panExp.MatchString(s)
}

func NormalizePAN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

type check struct {
	field string
	value interface{}
	rules []validation.Rule
}

func run(checks ...check) []FieldError {
	var errs []FieldError
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			errs = append(errs, FieldError{Field: c.field, Message: err.Error()})
		}
	}

	return errs
}

func required(field, value, message string) check {
	return check{
		field: field,
		value: strings.TrimSpace(value),
		rules: []validation.Rule{validation.Required.Error(message)},
	}
}

// predicate fails with message when a non-empty value does not satisfy ok.
func predicate(field, value string, ok func(string) bool, message string) check {
	return check{
		field: field,
		value: value,
		rules: []validation.Rule{validation.By(func(v interface{}) error {
			s, _ := v.(string)
			if s == "" || ok(s) {
				return nil
			}
			return errors.New(message)
		})},
	}
}

func date(field, value, message string) check {
	return check{
		field: field,
		value: strings.TrimSpace(value),
		rules: []validation.Rule{validation.Date(dateLayout).Error(message)},
	}
}

// ValidateStep returns the ordered errors for a single step. Unknown steps
// have no rules.
func ValidateStep(step Step, sport string, data domain.FormData) []FieldError {
	switch step {
	case StepPersonalInfo:
		return validatePersonalInfo(data.PersonalInfo)
	case StepFamilyDetails:
		return validateFamilyDetails(data.FamilyDetails)
	case StepSportSpecific:
		return validateSportSpecific(sport, data.SportSpecific)
	case StepDocuments:
		return validateDocuments(data.Documents)
	default:
		return nil
	}
}

// ValidateAll runs every step and keeps only the failing ones.
func ValidateAll(sport string, data domain.FormData) ValidationErrors {
	all := ValidationErrors{}
	for step := StepPersonalInfo; step <= StepDocuments; step++ {
		if errs := ValidateStep(step, sport, data); len(errs) > 0 {
			all[step] = errs
		}
	}

	return all
}

func validatePersonalInfo(p domain.PersonalInfo) []FieldError {
	errs := run(
		required(FieldName, p.Name, "Name is required"),
		required(FieldFatherName, p.FatherName, "Father's name is required"),
		required(FieldMembershipType, string(p.MembershipType), "Membership type is required"),
		required(FieldLocalAddress, p.Address.Local, "Local residence address is required"),
		required(FieldPermAddress, p.Address.Permanent, "Permanent address is required"),
		required(FieldMobile, p.Contact.Mobile, "Mobile number is required"),
		required(FieldEmail, p.Contact.Email, "Email address is required"),
		required(FieldProfession, p.Profession, "Profession is required"),
		required(FieldDateOfBirth, p.DateOfBirth, "Date of birth is required"),
		required(FieldAadharNumber, p.AadharNumber, "Aadhar number is required"),
		required(FieldPANNumber, p.PANNumber, "PAN number is required"),
	)

	return append(errs, run(
		check{
			field: FieldMembershipType,
			value: p.MembershipType,
			rules: []validation.Rule{
				validation.In(domain.MembershipRailway, domain.MembershipOutsider).Error("Membership type must be railway or outsider"),
			},
		},
		check{
			field: FieldEmail,
			value: p.Contact.Email,
			rules: []validation.Rule{validation.Match(emailExp).Error("Please enter a valid email address")},
		},
		predicate(FieldMobile, p.Contact.Mobile, ValidMobile, "Please enter a valid 10-digit mobile number"),
		predicate(FieldAadharNumber, p.AadharNumber, ValidAadhar, "Aadhar number must be 12 digits"),
		predicate(FieldPANNumber, p.PANNumber, func(s string) bool {
			return ValidPAN(strings.ToUpper(s))
		}, "PAN number format is invalid (e.g., ABCDE1234F)"),
		date(FieldDateOfBirth, p.DateOfBirth, "Date of birth must be a valid date (YYYY-MM-DD)"),
	)...)
}

func validateFamilyDetails(f domain.FamilyDetails) []FieldError {
	var errs []FieldError

	spouseName := strings.TrimSpace(f.Spouse.Name)
	spouseDOB := strings.TrimSpace(f.Spouse.DateOfBirth)
	if spouseName != "" && spouseDOB == "" {
		errs = append(errs, FieldError{Field: FieldSpouseDOB, Message: "Spouse date of birth is required when spouse name is provided"})
	}
	if spouseName == "" && spouseDOB != "" {
		errs = append(errs, FieldError{Field: FieldSpouseName, Message: "Spouse name is required when spouse date of birth is provided"})
	}
	errs = append(errs, run(date(FieldSpouseDOB, spouseDOB, "Spouse date of birth must be a valid date (YYYY-MM-DD)"))...)

	for i, child := range f.Children {
		name := strings.TrimSpace(child.Name)
		dob := strings.TrimSpace(child.DateOfBirth)
		if name != "" && dob == "" {
			errs = append(errs, FieldError{Field: childField(i, "date_of_birth"), Message: fmt.Sprintf("Date of birth is required for child %d", i+1)})
		}
		if name == "" && dob != "" {
			errs = append(errs, FieldError{Field: childField(i, "name"), Message: fmt.Sprintf("Name is required for child %d", i+1)})
		}
		errs = append(errs, run(date(childField(i, "date_of_birth"), dob, fmt.Sprintf("Date of birth for child %d must be a valid date (YYYY-MM-DD)", i+1)))...)
	}

	return errs
}

func validateSportSpecific(sport string, s domain.SportSpecific) []FieldError {
	category := domain.CategoryOf(sport)

	var errs []FieldError
	if s.Category != "" && s.Category != category {
		errs = append(errs, FieldError{Field: FieldSportCategory, Message: fmt.Sprintf("Sport details do not match %s", sport)})
	}

	if category == domain.CategoryGolf {
		golf := domain.GolfDetails{}
		if s.Golf != nil {
			golf = *s.Golf
		}

		errs = append(errs, run(
			required(FieldGolfExperience, golf.Experience, "Golf experience description is required"),
			check{
				field: FieldHasGolfSet,
				value: golf.HasGolfSet,
				rules: []validation.Rule{
					validation.Required.Error("Please specify if you possess a golf set"),
					validation.In(domain.Yes, domain.No).Error("Please answer yes or no for the golf set"),
				},
			},
		)...)
		if golf.HasGolfSet == domain.No {
			errs = append(errs, run(required(FieldGolfSetPlan, golf.GolfSetPlan, "Please explain how you plan to obtain golf equipment"))...)
		}

		return errs
	}

	general := domain.GeneralDetails{}
	if s.General != nil {
		general = *s.General
	}

	return append(errs, run(required(FieldSportExperience, general.Experience, fmt.Sprintf("Previous experience in %s is required", sport)))...)
}

func validateDocuments(d domain.Documents) []FieldError {
	return run(
		required(FieldPhoto, d.Photo, "Passport size photo is required"),
		required(FieldAadharCard, d.AadharCard, "Aadhar card document is required"),
		required(FieldPANCard, d.PANCard, "PAN card document is required"),
		check{
			field: FieldAgreement,
			value: d.AgreementAccept,
			rules: []validation.Rule{validation.Required.Error("You must agree to the declaration")},
		},
	)
}
