package scoring

import "github.com/umputun/newsdesk/pkg/domain"

// ceilings used to normalize source profile values to [0,1]
const (
	credibilityCeiling = 10.0
	staffCeiling       = 5000.0
	bureausCeiling     = 200.0
)

// SourceProfile describes a publisher's authority
type SourceProfile struct {
	Credibility float64  // 0..10
	Staff       int      // editorial staff size
	Bureaus     int      // number of bureaus
	Strong      []string // sections the publisher is known for, empty means no category penalty
}

// DefaultProfile is used for publishers missing from the profile table
var DefaultProfile = SourceProfile{Credibility: 5, Staff: 100, Bureaus: 5}

// Authority blends credibility 40%, staff 30% and bureaus 30%, each normalized against a ceiling
func (p SourceProfile) Authority() float64 {
	return 0.4*clamp01(p.Credibility/credibilityCeiling) +
		0.3*clamp01(float64(p.Staff)/staffCeiling) +
		0.3*clamp01(float64(p.Bureaus)/bureausCeiling)
}

// StrongIn reports whether section is one of the publisher's strong categories
func (p SourceProfile) StrongIn(section string) bool {
	if len(p.Strong) == 0 {
		return true
	}
	for _, s := range p.Strong {
		if s == section {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// DefaultProfiles keyed by canonical source name
var DefaultProfiles = map[string]SourceProfile{
	"Reuters":            {Credibility: 9.5, Staff: 2500, Bureaus: 200, Strong: []string{domain.SectionWorld, domain.SectionBusiness}},
	"AP":                 {Credibility: 9.3, Staff: 3000, Bureaus: 200, Strong: []string{domain.SectionWorld, domain.SectionPolitics}},
	"BBC News":           {Credibility: 9.0, Staff: 4000, Bureaus: 75, Strong: []string{domain.SectionWorld, domain.SectionScience}},
	"New York Times":     {Credibility: 9.0, Staff: 1700, Bureaus: 30, Strong: []string{domain.SectionWorld, domain.SectionBusiness, domain.SectionPolitics}},
	"The Guardian":       {Credibility: 8.5, Staff: 900, Bureaus: 20, Strong: []string{domain.SectionWorld, domain.SectionScience}},
	"Al Jazeera":         {Credibility: 8.0, Staff: 3000, Bureaus: 70, Strong: []string{domain.SectionWorld}},
	"CNN":                {Credibility: 7.8, Staff: 3000, Bureaus: 36, Strong: []string{domain.SectionWorld, domain.SectionPolitics}},
	"PTI":                {Credibility: 8.8, Staff: 1200, Bureaus: 150, Strong: []string{domain.SectionIndia, domain.SectionPolitics}},
	"The Hindu":          {Credibility: 8.6, Staff: 1500, Bureaus: 40, Strong: []string{domain.SectionIndia, domain.SectionPolitics, domain.SectionRegional}},
	"Indian Express":     {Credibility: 8.3, Staff: 1200, Bureaus: 30, Strong: []string{domain.SectionIndia, domain.SectionPolitics}},
	"Hindustan Times":    {Credibility: 7.4, Staff: 1500, Bureaus: 30, Strong: []string{domain.SectionIndia, domain.SectionLocal}},
	"Times of India":     {Credibility: 7.0, Staff: 3000, Bureaus: 60, Strong: []string{domain.SectionIndia, domain.SectionLocal, domain.SectionEntertainment, domain.SectionSports}},
	"NDTV":               {Credibility: 7.5, Staff: 1000, Bureaus: 25, Strong: []string{domain.SectionIndia, domain.SectionWorld}},
	"India Today":        {Credibility: 7.2, Staff: 1000, Bureaus: 20, Strong: []string{domain.SectionIndia, domain.SectionPolitics}},
	"News18":             {Credibility: 6.5, Staff: 1500, Bureaus: 25, Strong: []string{domain.SectionIndia, domain.SectionEntertainment}},
	"ANI":                {Credibility: 7.0, Staff: 800, Bureaus: 100, Strong: []string{domain.SectionIndia}},
	"New Indian Express": {Credibility: 7.8, Staff: 600, Bureaus: 20, Strong: []string{domain.SectionIndia, domain.SectionRegional}},
	"Deccan Herald":      {Credibility: 7.5, Staff: 500, Bureaus: 15, Strong: []string{domain.SectionRegional, domain.SectionLocal}},
	"DT Next":            {Credibility: 6.5, Staff: 200, Bureaus: 5, Strong: []string{domain.SectionLocal, domain.SectionRegional}},
	"Economic Times":     {Credibility: 8.0, Staff: 700, Bureaus: 20, Strong: []string{domain.SectionBusiness}},
	"Mint":               {Credibility: 8.2, Staff: 400, Bureaus: 10, Strong: []string{domain.SectionBusiness, domain.SectionTechnology}},
	"Business Standard":  {Credibility: 8.2, Staff: 500, Bureaus: 15, Strong: []string{domain.SectionBusiness}},
	"Financial Express":  {Credibility: 7.6, Staff: 300, Bureaus: 10, Strong: []string{domain.SectionBusiness}},
	"Moneycontrol":       {Credibility: 7.5, Staff: 300, Bureaus: 5, Strong: []string{domain.SectionBusiness}},
	"TechCrunch":         {Credibility: 8.0, Staff: 100, Bureaus: 3, Strong: []string{domain.SectionTechnology, domain.SectionBusiness}},
	"The Verge":          {Credibility: 7.8, Staff: 100, Bureaus: 2, Strong: []string{domain.SectionTechnology, domain.SectionEntertainment}},
	"ESPNcricinfo":       {Credibility: 8.8, Staff: 200, Bureaus: 10, Strong: []string{domain.SectionSports}},
	"Google News":        {Credibility: 6.0, Staff: 0, Bureaus: 0},
}
