package domain

// FeeTier is the annual membership fee in rupees for each membership type.
type FeeTier struct {
	Railway  int64 `json:"railway"`
	Outsider int64 `json:"outsider"`
}

var (
	defaultFeeTier = FeeTier{Railway: 18000, Outsider: 25000}

	feeTable = map[string]FeeTier{
		"golf":       {Railway: 50000, Outsider: 200000},
		"swimming":   {Railway: 18000, Outsider: 25000},
		"tennis":     {Railway: 22000, Outsider: 30000},
		"football":   {Railway: 15000, Outsider: 20000},
		"basketball": {Railway: 13000, Outsider: 18000},
		"cricket":    {Railway: 16000, Outsider: 22000},
	}
)

// FeeTierFor looks the sport up case-insensitively, falling back to the
// default tier for sports that have no entry.
func FeeTierFor(sport string) FeeTier {
	if tier, ok := feeTable[NormalizeSport(sport)]; ok {
		return tier
	}

	return defaultFeeTier
}

// MembershipFee is a pure function of sport and membership type.
func MembershipFee(sport string, membershipType MembershipType) int64 {
	tier := FeeTierFor(sport)
	if membershipType == MembershipRailway {
		return tier.Railway
	}

	return tier.Outsider
}
