package form

import (
	"fmt"
	"strconv"

	"github.com/blwclub/membership-portal/internal/domain"
)

const (
	FieldName           = "personal_info.name"
	FieldFatherName     = "personal_info.father_name"
	FieldMembershipType = "personal_info.membership_type"
	FieldLocalAddress   = "personal_info.address.local"
	FieldPermAddress    = "personal_info.address.permanent"
	FieldOfficeAddress  = "personal_info.address.office"
	FieldOfficePhone    = "personal_info.contact.office"
	FieldResidencePhone = "personal_info.contact.residence"
	FieldMobile         = "personal_info.contact.mobile"
	FieldEmail          = "personal_info.contact.email"
	FieldProfession     = "personal_info.profession"
	FieldPosition       = "personal_info.position"
	FieldEducation      = "personal_info.education"
	FieldQualification  = "personal_info.special_qualification"
	FieldDateOfBirth    = "personal_info.date_of_birth"
	FieldAadharNumber   = "personal_info.aadhar_number"
	FieldPANNumber      = "personal_info.pan_number"

	FieldSpouseName = "family_details.spouse.name"
	FieldSpouseDOB  = "family_details.spouse.date_of_birth"

	FieldSportCategory   = "sport_specific.category"
	FieldGolfExperience  = "sport_specific.golf.golf_experience"
	FieldHasGolfSet      = "sport_specific.golf.has_golf_set"
	FieldGolfSetPlan     = "sport_specific.golf.golf_set_plan"
	FieldSportExperience = "sport_specific.general.experience"

	FieldPhoto      = "documents.photo"
	FieldAadharCard = "documents.aadhar_card"
	FieldPANCard    = "documents.pan_card"
	FieldAgreement  = "documents.agreement_accepted"
)

func childField(index int, name string) string {
	return fmt.Sprintf("family_details.children[%d].%s", index, name)
}

func personalFields(p domain.PersonalInfo) map[string]string {
	return map[string]string{
		FieldName:           p.Name,
		FieldFatherName:     p.FatherName,
		FieldMembershipType: string(p.MembershipType),
		FieldLocalAddress:   p.Address.Local,
		FieldPermAddress:    p.Address.Permanent,
		FieldOfficeAddress:  p.Address.Office,
		FieldOfficePhone:    p.Contact.Office,
		FieldResidencePhone: p.Contact.Residence,
		FieldMobile:         p.Contact.Mobile,
		FieldEmail:          p.Contact.Email,
		FieldProfession:     p.Profession,
		FieldPosition:       p.Position,
		FieldEducation:      p.Education,
		FieldQualification:  p.SpecialQualification,
		FieldDateOfBirth:    p.DateOfBirth,
		FieldAadharNumber:   p.AadharNumber,
		FieldPANNumber:      p.PANNumber,
	}
}

func familyFields(f domain.FamilyDetails) map[string]string {
	fields := map[string]string{
		FieldSpouseName: f.Spouse.Name,
		FieldSpouseDOB:  f.Spouse.DateOfBirth,
	}
	for i, child := range f.Children {
		fields[childField(i, "name")] = child.Name
		fields[childField(i, "date_of_birth")] = child.DateOfBirth
	}

	return fields
}

func sportFields(s domain.SportSpecific) map[string]string {
	fields := map[string]string{
		FieldSportCategory: string(s.Category),
	}
	if s.Golf != nil {
		fields[FieldGolfExperience] = s.Golf.Experience
		fields[FieldHasGolfSet] = string(s.Golf.HasGolfSet)
		fields[FieldGolfSetPlan] = s.Golf.GolfSetPlan
	}
	if s.General != nil {
		fields[FieldSportExperience] = s.General.Experience
	}

	return fields
}

func documentFields(d domain.Documents) map[string]string {
	return map[string]string{
		FieldPhoto:      d.Photo,
		FieldAadharCard: d.AadharCard,
		FieldPANCard:    d.PANCard,
		FieldAgreement:  strconv.FormatBool(d.AgreementAccept),
	}
}

// changedFields lists keys whose value differs between before and after,
// including keys present on only one side.
func changedFields(before, after map[string]string) []string {
	var changed []string
	for key, old := range before {
		if cur, ok := after[key]; !ok || cur != old {
			changed = append(changed, key)
		}
	}
	for key := range after {
		if _, ok := before[key]; !ok {
			changed = append(changed, key)
		}
	}

	return changed
}
