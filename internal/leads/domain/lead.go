// Package domain holds the lead qualification domain model.
package domain

import (
	"strings"
	"time"
)

// CompanySize is the fixed company-size bucket enumeration.
type CompanySize string

const (
	SizeMicro      CompanySize = "1-10"
	SizeSmall      CompanySize = "11-50"
	SizeMedium     CompanySize = "51-200"
	SizeLarge      CompanySize = "201-1000"
	SizeEnterprise CompanySize = "1000+"
)

// ValidCompanySizes lists every accepted bucket, smallest first.
var ValidCompanySizes = []CompanySize{SizeMicro, SizeSmall, SizeMedium, SizeLarge, SizeEnterprise}

// IsValid reports whether the bucket is one of the fixed enumeration values.
func (s CompanySize) IsValid() bool {
	for _, v := range ValidCompanySizes {
		if s == v {
			return true
		}
	}
	return false
}

// Category is the coarse qualification tier derived from a score.
type Category string

const (
	CategoryHot       Category = "HOT"
	CategoryWarm      Category = "WARM"
	CategoryQualified Category = "QUALIFIED"
	CategoryCold      Category = "COLD"
)

// TerritoryAssignment routes a lead to a sales territory and its representative.
type TerritoryAssignment struct {
	Territory      string `json:"territory"`
	Representative string `json:"representative"`
}

// Lead is an inbound prospect record. Email is the natural key; re-submission
// with the same email overwrites the prior record entirely (last write wins).
type Lead struct {
	Email       string              `json:"email"`
	FirstName   string              `json:"firstName,omitempty"`
	LastName    string              `json:"lastName,omitempty"`
	Company     string              `json:"company,omitempty"`
	JobTitle    string              `json:"jobTitle,omitempty"`
	Industry    string              `json:"industry,omitempty"`
	CompanySize CompanySize         `json:"companySize,omitempty"`
	Source      string              `json:"source,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Score       int                 `json:"score"`
	Category    Category            `json:"category,omitempty"`
	Territory   TerritoryAssignment `json:"territory"`
	// Extra carries forward-compatible passthrough fields that are not part
	// of the typed schema.
	Extra     map[string]any `json:"extra,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email for use as a store key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FullName joins the first and last name for display in collaborator payloads.
func (l Lead) FullName() string {
	name := strings.TrimSpace(l.FirstName + " " + l.LastName)
	if name == "" {
		return l.Email
	}
	return name
}
