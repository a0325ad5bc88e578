package domain

// well-known section names used by heuristics
const (
	SectionWorld         = "world"
	SectionIndia         = "india"
	SectionBusiness      = "business"
	SectionTechnology    = "technology"
	SectionSports        = "sports"
	SectionEntertainment = "entertainment"
	SectionScience       = "science"
	SectionHealth        = "health"
	SectionPolitics      = "politics"
	SectionSocial        = "social"
	SectionLocal         = "local"
	SectionRegional      = "regional"
)
