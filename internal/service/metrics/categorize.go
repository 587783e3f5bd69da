package metrics

import "strings"

// Downtime category taxonomy. Every free-text reason maps to exactly one of
// these; anything unrecognized lands in CategoryOther.
const (
	CategoryMechanical = "Mechanical"
	CategoryElectrical = "Electrical"
	CategoryTooling    = "Tooling"
	CategoryMaterial   = "Material"
	CategoryQuality    = "Quality"
	CategoryPlanned    = "Planned"
	CategoryManpower   = "Manpower"
	CategoryOther      = "Other"
)

// categoryKeywords is checked in order; the first keyword found in the
// normalized reason wins.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"mechanical", CategoryMechanical},
	{"hydraulic", CategoryMechanical},
	{"coolant", CategoryMechanical},
	{"spindle", CategoryMechanical},
	{"breakdown", CategoryMechanical},
	{"electrical", CategoryElectrical},
	{"power", CategoryElectrical},
	{"electric", CategoryElectrical},
	{"tool", CategoryTooling},
	{"insert", CategoryTooling},
	{"tooling", CategoryTooling},
	{"material", CategoryMaterial},
	{"raw material", CategoryMaterial},
	{"stock", CategoryMaterial},
	{"inspection", CategoryQuality},
	{"quality", CategoryQuality},
	{"first piece", CategoryQuality},
	{"rework", CategoryQuality},
	{"maintenance", CategoryPlanned},
	{"pm ", CategoryPlanned},
	{"meeting", CategoryPlanned},
	{"break", CategoryPlanned},
	{"lunch", CategoryPlanned},
	{"tea", CategoryPlanned},
	{"cleaning", CategoryPlanned},
	{"operator", CategoryManpower},
	{"manpower", CategoryManpower},
	{"absent", CategoryManpower},
	{"training", CategoryManpower},
	{"setup", CategoryPlanned},
	{"setting", CategoryPlanned},
	{"changeover", CategoryPlanned},
	{"program", CategoryTooling},
}

// CategorizeDowntime maps a free-text downtime reason onto the closed category
// set above.
func CategorizeDowntime(reason string) string {
	normalized := strings.ToLower(strings.TrimSpace(reason))
	if normalized == "" {
		return CategoryOther
	}

	for _, kw := range categoryKeywords {
		if strings.Contains(normalized, kw.keyword) {
			return kw.category
		}
	}

	return CategoryOther
}
