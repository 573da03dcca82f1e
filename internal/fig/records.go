package fig

// Raw record schemas as served by the registry's license search endpoints.
// Field names follow the upstream JSON exactly (all lower-case, no
// separators). These shapes are interpreted in exactly one place: the
// ingestion transform in internal/registry.

// RawAthlete is one element of the athlete license search response.
type RawAthlete struct {
	IDLicense          string `json:"idgymnastlicense"`
	GymnastID          string `json:"gymnastid"`
	Discipline         string `json:"discipline"`
	PreferredFirstName string `json:"preferredfirstname"`
	PreferredLastName  string `json:"preferredlastname"`
	Gender             string `json:"gender"`
	Country            string `json:"country"`
	Birth              string `json:"birth"`       // "2006-01-02"
	ValidTo            string `json:"validtodate"` // "2006-01-02"
	Status             string `json:"licensestatus"`
}

// RawCoach is one element of the coach search response.
type RawCoach struct {
	ID                 string `json:"id"`
	Discipline         string `json:"discipline"`
	PreferredFirstName string `json:"preferredfirstname"`
	PreferredLastName  string `json:"preferredlastname"`
	Gender             string `json:"gender"`
	Country            string `json:"country"`
	Level              string `json:"level"`
	LevelDescription   string `json:"leveldescription"`
}

// RawJudge is one element of the judge search response.
type RawJudge struct {
	ID                  string `json:"id"`
	Discipline          string `json:"discipline"`
	PreferredFirstName  string `json:"preferredfirstname"`
	PreferredLastName   string `json:"preferredlastname"`
	Gender              string `json:"gender"`
	Country             string `json:"country"`
	Category            string `json:"category"`
	CategoryDescription string `json:"categorydescription"`
}
