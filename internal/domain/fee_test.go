package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMembershipFee(t *testing.T) {
	tests := []struct {
		sport          string
		membershipType MembershipType
		want           int64
	}{
		{"golf", MembershipRailway, 50000},
		{"golf", MembershipOutsider, 200000},
		{"Golf", MembershipOutsider, 200000},
		{"swimming", MembershipRailway, 18000},
		{"tennis", MembershipOutsider, 30000},
		{"cricket", MembershipRailway, 16000},
		{"unknown-sport", MembershipOutsider, 25000},
		{"unknown-sport", MembershipRailway, 18000},
	}

	for _, tt := range tests {
		t.Run(tt.sport+"/"+string(tt.membershipType), func(t *testing.T) {
			assert.Equal(t, tt.want, MembershipFee(tt.sport, tt.membershipType))
		})
	}
}

func TestSports(t *testing.T) {
	sports := Sports()

	assert.Len(t, sports, 6)
	assert.Equal(t, "golf", sports[0].Slug)
	assert.Equal(t, CategoryGolf, sports[0].Category)
	assert.Equal(t, FeeTier{Railway: 50000, Outsider: 200000}, sports[0].Fees)
	for _, s := range sports[1:] {
		assert.Equal(t, CategoryGeneral, s.Category, s.Slug)
	}
}
