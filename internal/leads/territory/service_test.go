package territory

import (
	"testing"

	"leadflow_backend/internal/leads/domain"
)

func TestAssignOrderedRules(t *testing.T) {
	svc := NewService()

	cases := []struct {
		name     string
		size     domain.CompanySize
		industry string
		score    int
		want     string
	}{
		{"enterprise size", domain.SizeEnterprise, "retail", 10, Enterprise},
		{"large size is mid-market", domain.SizeLarge, "retail", 10, MidMarket},
		{"medium size high score is mid-market", domain.SizeMedium, "retail", 70, MidMarket},
		{"medium size low score is smb", domain.SizeMedium, "retail", 69, SMB},
		{"micro default smb", domain.SizeMicro, "saas", 95, SMB},
		{"fintech override escalates small company", domain.SizeSmall, "fintech", 80, Enterprise},
		{"fintech override beats mid-market rule", domain.SizeMedium, "fintech", 85, Enterprise},
		{"fintech below override threshold follows size rules", domain.SizeMedium, "fintech", 75, MidMarket},
		{"fintech case-insensitive", domain.SizeMicro, " FinTech ", 90, Enterprise},
	}

	for _, tc := range cases {
		got := svc.Assign(tc.size, tc.industry, tc.score)
		if got.Territory != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got.Territory)
		}
	}
}

func TestAssignIsPure(t *testing.T) {
	svc := NewService()

	first := svc.Assign(domain.SizeMedium, "fintech", 85)
	for i := 0; i < 5; i++ {
		got := svc.Assign(domain.SizeMedium, "fintech", 85)
		if got != first {
			t.Fatalf("assignment not stable: got %+v, want %+v", got, first)
		}
	}
}

func TestFintechOverrideSharesEnterpriseRep(t *testing.T) {
	svc := NewService()

	bySize := svc.Assign(domain.SizeEnterprise, "retail", 0)
	byOverride := svc.Assign(domain.SizeSmall, "fintech", 90)
	if byOverride.Representative != bySize.Representative {
		t.Fatalf("fintech override must route to the enterprise rep: got %s, want %s",
			byOverride.Representative, bySize.Representative)
	}
}

func TestEveryTerritoryHasRepresentative(t *testing.T) {
	svc := NewService()

	for _, tc := range []struct {
		size  domain.CompanySize
		score int
	}{
		{domain.SizeEnterprise, 0},
		{domain.SizeLarge, 0},
		{domain.SizeMicro, 0},
	} {
		got := svc.Assign(tc.size, "retail", tc.score)
		if got.Representative == "" {
			t.Fatalf("territory %s has no representative", got.Territory)
		}
	}
}
