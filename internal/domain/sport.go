package domain

import "strings"

type Sport struct {
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Members     string        `json:"members"`
	Category    SportCategory `json:"category"`
	Fees        FeeTier       `json:"fees"`
}

var catalog = []Sport{
	{Slug: "golf", Name: "Golf", Description: "Professional golf course with 18 holes", Members: "500+"},
	{Slug: "swimming", Name: "Swimming", Description: "Olympic-size swimming pool with coaching", Members: "300+"},
	{Slug: "tennis", Name: "Tennis", Description: "Multiple courts with professional training", Members: "400+"},
	{Slug: "football", Name: "Football", Description: "Full-size field with youth programs", Members: "250+"},
	{Slug: "basketball", Name: "Basketball", Description: "Indoor and outdoor courts available", Members: "200+"},
	{Slug: "cricket", Name: "Cricket", Description: "Professional cricket ground and nets", Members: "350+"},
}

// Sports returns the club's sports catalog with category and fee tiers filled in.
func Sports() []Sport {
	sports := make([]Sport, 0, len(catalog))
	for _, s := range catalog {
		s.Category = CategoryOf(s.Slug)
		s.Fees = FeeTierFor(s.Slug)
		sports = append(sports, s)
	}

	return sports
}

func NormalizeSport(sport string) string {
	return strings.ToLower(strings.TrimSpace(sport))
}

func CategoryOf(sport string) SportCategory {
	if NormalizeSport(sport) == "golf" {
		return CategoryGolf
	}

	return CategoryGeneral
}
