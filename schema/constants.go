package schema

// Custom string types for type safety.
type (
	// SubgroupKey names one demographic subgroup tracked by the rubric.
	SubgroupKey string

	// Domain represents one of the top-level scoring categories.
	Domain string

	// OutputMode represents the format of the output.
	OutputMode string

	// BurdenBasis selects which reference-burden definition to score against.
	BurdenBasis string

	// HistoryBackend represents the database backend for run history.
	HistoryBackend string
)

// Canonical subgroup keys. These are the only keys the scoring core
// accepts; the payload boundary maps aliases onto them.
const (
	KeyWhite  SubgroupKey = "white_pct"
	KeyBlack  SubgroupKey = "black_pct"
	KeyAsian  SubgroupKey = "asian_pct"
	KeyAIAN   SubgroupKey = "aian_pct"
	KeyFemale SubgroupKey = "female_pct"
	KeyMale   SubgroupKey = "male_pct"
	KeyAge65  SubgroupKey = "age65_pct"
)

// Scoring domains, in rubric order.
const (
	RaceDomain Domain = "race"
	SexDomain  Domain = "sex"
	AgeDomain  Domain = "age"
)

// All output modes supported by the scoring commands. Parquet output is
// produced only by 'history export', not via --output.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All burden bases supported.
const (
	PrevalenceBasis BurdenBasis = "prevalence" // default
	MortalityBasis  BurdenBasis = "mortality"
)

// All history backends supported.
const (
	SQLiteBackend     HistoryBackend = "sqlite" // default
	MySQLBackend      HistoryBackend = "mysql"
	PostgreSQLBackend HistoryBackend = "postgresql"
	NoneBackend       HistoryBackend = "none"
)

// DomainOrder fixes the domain iteration order for deterministic output.
var DomainOrder = []Domain{RaceDomain, SexDomain, AgeDomain}

// CategoryOrder is the canonical subgroup ordering used in tables,
// charts, and gap-analysis tie-breaking.
var CategoryOrder = []SubgroupKey{
	KeyWhite,
	KeyBlack,
	KeyAsian,
	KeyAIAN,
	KeyFemale,
	KeyMale,
	KeyAge65,
}

// DisplayLabels are the full human-readable column labels.
var DisplayLabels = map[SubgroupKey]string{
	KeyWhite:  "White (%)",
	KeyBlack:  "Black (%)",
	KeyAsian:  "Asian (%)",
	KeyAIAN:   "American Indian / Alaska Native (%)",
	KeyFemale: "Female (%)",
	KeyMale:   "Male (%)",
	KeyAge65:  "Age ≥65 (%)",
}

// ShortLabels are the compact labels used in gap summaries.
var ShortLabels = map[SubgroupKey]string{
	KeyWhite:  "White",
	KeyBlack:  "Black",
	KeyAsian:  "Asian",
	KeyAIAN:   "AI/AN",
	KeyFemale: "Female",
	KeyMale:   "Male",
	KeyAge65:  "Age ≥65",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidBurdenBases lists all valid burden bases.
var ValidBurdenBases = map[BurdenBasis]struct{}{
	PrevalenceBasis: {},
	MortalityBasis:  {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[HistoryBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsCanonicalKey reports whether key is one of the seven rubric keys.
func IsCanonicalKey(key SubgroupKey) bool {
	for _, k := range CategoryOrder {
		if k == key {
			return true
		}
	}
	return false
}

// ShortLabel returns the compact display label for a subgroup key,
// falling back to the raw key when no label is registered.
func ShortLabel(key SubgroupKey) string {
	if label, ok := ShortLabels[key]; ok {
		return label
	}
	return string(key)
}
