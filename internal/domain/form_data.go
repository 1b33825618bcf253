package domain

type MembershipType string

const (
	MembershipRailway  MembershipType = "railway"
	MembershipOutsider MembershipType = "outsider"
)

type Contact struct {
	Office    string `json:"office"`
	Residence string `json:"residence"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
}

type PersonalInfo struct {
	Name                 string         `json:"name"`
	FatherName           string         `json:"father_name"`
	MembershipType       MembershipType `json:"membership_type"`
	Address              Address        `json:"address"`
	Contact              Contact        `json:"contact"`
	Profession           string         `json:"profession"`
	Position             string         `json:"position"`
	Education            string         `json:"education"`
	SpecialQualification string         `json:"special_qualification"`
	DateOfBirth          string         `json:"date_of_birth"`
	AadharNumber         string         `json:"aadhar_number"`
	PANNumber            string         `json:"pan_number"`
}

type Relative struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

type FamilyDetails struct {
	Spouse   Relative   `json:"spouse"`
	Children []Relative `json:"children"`
}

type SportCategory string

const (
	CategoryGolf    SportCategory = "golf"
	CategoryGeneral SportCategory = "general"
)

type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

type GolfDetails struct {
	Experience  string `json:"golf_experience"`
	HasGolfSet  YesNo  `json:"has_golf_set"`
	GolfSetPlan string `json:"golf_set_plan"`
}

type GeneralDetails struct {
	Experience string `json:"experience"`
}

// SportSpecific carries exactly one variant, selected by Category.
type SportSpecific struct {
	Category SportCategory   `json:"category"`
	Golf     *GolfDetails    `json:"golf,omitempty"`
	General  *GeneralDetails `json:"general,omitempty"`
}

// EmptySportSpecific returns a blank variant for the category of sport.
func EmptySportSpecific(sport string) SportSpecific {
	if CategoryOf(sport) == CategoryGolf {
		return SportSpecific{Category: CategoryGolf, Golf: &GolfDetails{}}
	}
	return SportSpecific{Category: CategoryGeneral, General: &GeneralDetails{}}
}

type Documents struct {
	Photo           string `json:"photo"`
	AadharCard      string `json:"aadhar_card"`
	PANCard         string `json:"pan_card"`
	AgreementAccept bool   `json:"agreement_accepted"`
}

type FormData struct {
	PersonalInfo  PersonalInfo  `json:"personal_info"`
	FamilyDetails FamilyDetails `json:"family_details"`
	SportSpecific SportSpecific `json:"sport_specific"`
	Documents     Documents     `json:"documents"`
}
