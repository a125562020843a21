// Package models defines the domain types for Castellan.
package models

// Castle is one record in the collection file. Every nested grouping is
// optional: a base record may carry only identity fields, and the
// enhancement merge fills in the rest with explicit defaults.
type Castle struct {
	ID                  string       `json:"id"`
	CastleName          string       `json:"castleName"`
	Country             string       `json:"country"`
	Location            string       `json:"location,omitempty"`
	Coordinates         *Coordinates `json:"coordinates,omitempty"`
	ArchitecturalStyle  string       `json:"architecturalStyle,omitempty"`
	YearBuilt           string       `json:"yearBuilt,omitempty"`
	ShortDescription    string       `json:"shortDescription,omitempty"`
	DetailedDescription string       `json:"detailedDescription,omitempty"`

	HistoricalPeriods    []string         `json:"historicalPeriods,omitempty"`
	CulturalThemes       []string         `json:"culturalThemes,omitempty"`
	CulturalSignificance string           `json:"culturalSignificance,omitempty"`
	KeyFeatures          []string         `json:"keyFeatures,omitempty"`
	Legends              []Legend         `json:"legends,omitempty"`
	NotableBattles       []Battle         `json:"notableBattles,omitempty"`
	RulerBiographies     []RulerBiography `json:"rulerBiographies,omitempty"`

	CurrentStatus       *CurrentStatus       `json:"currentStatus,omitempty"`
	VisitorInfo         *VisitorInfo         `json:"visitorInfo,omitempty"`
	PreservationEfforts *PreservationEfforts `json:"preservationEfforts,omitempty"`
	TourismDetails      *TourismDetails      `json:"tourismDetails,omitempty"`
	EngineeringDetails  *EngineeringDetails  `json:"engineeringDetails,omitempty"`
	ModernTrends        *ModernTrends        `json:"modernTrends2025,omitempty"`
	Unesco              *UnescoInfo          `json:"unesco,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Legend is a structured legend entry attached to a castle.
type Legend struct {
	Title     string `json:"title"`
	Narrative string `json:"narrative"`
}

// Battle describes one military event in a castle's history.
type Battle struct {
	Name         string `json:"name"`
	Participants string `json:"participants,omitempty"`
	Significance string `json:"significance,omitempty"`
}

// RulerBiography is a condensed biography of a ruler associated with a castle.
type RulerBiography struct {
	FullName string `json:"fullName"`
	Lifespan string `json:"lifespan,omitempty"`
	Epithet  string `json:"epithet,omitempty"`
	Legacy   string `json:"legacy,omitempty"`
}

// CurrentStatus describes the present condition and use of the structure.
type CurrentStatus struct {
	Condition         string `json:"condition,omitempty"`
	Ownership         string `json:"ownership,omitempty"`
	Function          string `json:"function,omitempty"`
	RestorationStatus string `json:"restorationStatus,omitempty"`
}

// OpeningHours holds display strings for visiting hours.
type OpeningHours struct {
	Seasonal string `json:"seasonal,omitempty"`
	Summer   string `json:"summer,omitempty"`
	Winter   string `json:"winter,omitempty"`
}

// VisitorInfo groups practical visiting information.
type VisitorInfo struct {
	OpeningHours  *OpeningHours `json:"openingHours,omitempty"`
	AdmissionFee  string        `json:"admissionFee,omitempty"`
	Accessibility string        `json:"accessibility,omitempty"`
	GuidedTours   string        `json:"guidedTours,omitempty"`
}

// PreservationEfforts describes conservation work on the site.
type PreservationEfforts struct {
	Status       string   `json:"status,omitempty"`
	Organization string   `json:"organization,omitempty"`
	RecentWork   []string `json:"recentWork,omitempty"`
}

// TourismDetails groups tourism-facing facts.
type TourismDetails struct {
	AnnualVisitors    string   `json:"annualVisitors,omitempty"`
	Facilities        []string `json:"facilities,omitempty"`
	NearbyAttractions []string `json:"nearbyAttractions,omitempty"`
}

// EngineeringDetails groups construction and defensive facts.
type EngineeringDetails struct {
	ConstructionMaterials []string `json:"constructionMaterials,omitempty"`
	DefensiveFeatures     []string `json:"defensiveFeatures,omitempty"`
	NotableInnovations    string   `json:"notableInnovations,omitempty"`
}

// ModernTrends is the classifier block the merge stamps on every record.
// Serialized under the legacy "modernTrends2025" key for compatibility with
// existing collection files.
type ModernTrends struct {
	PPPEligible         bool   `json:"pppEligible"`
	BudgetEstimate      string `json:"budgetEstimate,omitempty"`
	DigitalTourismReady bool   `json:"digitalTourismReady"`
	SustainabilityFocus string `json:"sustainabilityFocus,omitempty"`
}

// UnescoInfo records World Heritage listing data.
type UnescoInfo struct {
	Listed    bool   `json:"listed"`
	Reference string `json:"reference,omitempty"`
	Year      string `json:"year,omitempty"`
	Criteria  string `json:"criteria,omitempty"`
}

// Metadata carries provenance and quality fields maintained by the pipeline.
type Metadata struct {
	Version             string  `json:"version,omitempty"`
	Source              string  `json:"source,omitempty"`
	SourceURL           string  `json:"sourceUrl,omitempty"`
	ExtractionTimestamp string  `json:"extractionTimestamp,omitempty"`
	LastEnhanced        string  `json:"lastEnhanced,omitempty"`
	CompletenessScore   int     `json:"completenessScore"`
	NarrativeQuality    float64 `json:"narrativeQuality,omitempty"`
}

// Enhancement is a hand-authored (or extracted) record keyed by castle id
// that supplies additional fields for the merge. Field names follow the
// snake_case convention of the enhancement dataset files.
type Enhancement struct {
	ID                   string               `json:"id"`
	YearBuilt            string               `json:"year_built,omitempty"`
	DetailedDescription  string               `json:"detailed_description,omitempty"`
	CurrentStatus        *CurrentStatus       `json:"current_status,omitempty"`
	OpeningHours         *OpeningHours        `json:"opening_hours,omitempty"`
	AdmissionFee         string               `json:"admission_fee,omitempty"`
	Accessibility        string               `json:"accessibility,omitempty"`
	GuidedTours          string               `json:"guided_tours,omitempty"`
	PreservationEfforts  *PreservationEfforts `json:"preservation_efforts,omitempty"`
	TourismDetails       *TourismDetails      `json:"tourism_details,omitempty"`
	Unesco               *UnescoInfo          `json:"unesco,omitempty"`
	CulturalSignificance string               `json:"cultural_significance,omitempty"`
	Legends              []Legend             `json:"legends,omitempty"`
	NotableBattles       []Battle             `json:"notable_battles,omitempty"`
	RulerBiographies     []RulerBiography     `json:"ruler_biographies,omitempty"`
}

// Candidate is an entry in the candidate registry: a castle known to the
// system but not yet part of the collection.
type Candidate struct {
	ID                 string       `json:"id"`
	CastleName         string       `json:"castleName"`
	Country            string       `json:"country"`
	Location           string       `json:"location,omitempty"`
	Coordinates        *Coordinates `json:"coordinates,omitempty"`
	ArchitecturalStyle string       `json:"architecturalStyle,omitempty"`
	YearBuilt          string       `json:"yearBuilt,omitempty"`
	ShortDescription   string       `json:"shortDescription,omitempty"`
	Source             string       `json:"source,omitempty"`
	SourceURL          string       `json:"sourceUrl,omitempty"`
	QualityScore       float64      `json:"qualityScore,omitempty"`
}

// CastleSummary is a lightweight representation returned by list operations.
type CastleSummary struct {
	ID                string `json:"id"`
	CastleName        string `json:"castleName"`
	Country           string `json:"country"`
	CompletenessScore int    `json:"completenessScore"`
}
