package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
)

type ProfileRequest struct {
	Name        string         `json:"name"`
	Mobile      string         `json:"mobile"`
	Profession  string         `json:"profession"`
	Address     domain.Address `json:"address"`
	Contact     struct {
		Office    string `json:"office"`
		Residence string `json:"residence"`
	} `json:"contact"`
	Position    string `json:"position"`
	Education   string `json:"education"`
	DateOfBirth string `json:"date_of_birth"`
}

func (req *ProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Mobile, validation.By(func(v interface{}) error {
			if s, _ := v.(string); s != "" && !form.ValidMobile(s) {
				return errors.New("must be a valid 10-digit mobile number")
			}
			return nil
		})),
		validation.Field(&req.DateOfBirth, validation.Date("2006-01-02")),
	)
}

func (req *ProfileRequest) ToDomain() domain.Profile {
	return domain.Profile{
		Name:       req.Name,
		Mobile:     req.Mobile,
		Profession: req.Profession,
		Address:    req.Address,
		Contact: domain.ProfileContact{
			Office:    req.Contact.Office,
			Residence: req.Contact.Residence,
		},
		Position:    req.Position,
		Education:   req.Education,
		DateOfBirth: req.DateOfBirth,
	}
}
