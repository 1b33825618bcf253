package domain

import "strings"

// QuickFilter is the filter selected from the dashboard stat cards.
type QuickFilter string

const (
	QuickAll        QuickFilter = "all"
	QuickPending    QuickFilter = "pending"
	QuickApproved   QuickFilter = "approved"
	QuickPaymentDue QuickFilter = "payment-due"
)

func (q QuickFilter) Match(a Application) bool {
	switch q {
	case QuickPending:
		return a.Status == StatusPending
	case QuickApproved:
		return a.Status == StatusApproved
	case QuickPaymentDue:
		return a.PaymentDue()
	default:
		return true
	}
}

// ApplicationFilter combines the admin console filters. Empty fields and
// "all" match everything.
type ApplicationFilter struct {
	Status ApplicationStatus
	Sport  string
	Search string
	Active QuickFilter
}

func (f ApplicationFilter) Match(a Application) bool {
	if f.Status != "" && f.Status != "all" && a.Status != f.Status {
		return false
	}

	if sport := NormalizeSport(f.Sport); sport != "" && sport != "all" && NormalizeSport(a.Sport) != sport {
		return false
	}

	if term := strings.ToLower(f.Search); term != "" {
		name := strings.ToLower(a.Data.PersonalInfo.Name)
		email := strings.ToLower(a.Data.PersonalInfo.Contact.Email)
		if !strings.Contains(name, term) && !strings.Contains(email, term) {
			return false
		}
	}

	return f.Active.Match(a)
}

func FilterApplications(apps []Application, match func(Application) bool) []Application {
	filtered := make([]Application, 0, len(apps))
	for _, a := range apps {
		if match(a) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

type ApplicationStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Approved   int `json:"approved"`
	Rejected   int `json:"rejected"`
	PaymentDue int `json:"payment_due"`
}

func ComputeStats(apps []Application) ApplicationStats {
	stats := ApplicationStats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		}
		if a.PaymentDue() {
			stats.PaymentDue++
		}
	}

	return stats
}
