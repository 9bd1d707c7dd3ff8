package registry

// defaultEntries is the built-in facility table.
var defaultEntries = []Entry{
	{FacilityID: "FAC_001", Zone: "Asia/Kolkata", NominalOffsetHours: 5.5, Abbreviation: "IST", Name: "Global India HQ", Location: "India"},
	{FacilityID: "FAC_002", Zone: "America/New_York", NominalOffsetHours: -5, Abbreviation: "EST", Name: "Global New York Clinic", Location: "USA"},
	{FacilityID: "FAC_003", Zone: "Europe/London", NominalOffsetHours: 0, Abbreviation: "GMT", Name: "Global London AI Hub", Location: "UK"},
	{FacilityID: "FAC_004", Zone: "Asia/Tokyo", NominalOffsetHours: 9, Abbreviation: "JST", Name: "Global Tokyo Lab", Location: "Japan"},
	{FacilityID: "FAC_005", Zone: "Australia/Sydney", NominalOffsetHours: 10, Abbreviation: "AEST", Location: "Australia"},
	{FacilityID: "FAC_006", Zone: "Europe/Paris", NominalOffsetHours: 1, Abbreviation: "CET", Location: "France"},
	{FacilityID: "FAC_007", Zone: "Asia/Dubai", NominalOffsetHours: 4, Abbreviation: "GST", Location: "UAE"},
	{FacilityID: "FAC_008", Zone: "America/Los_Angeles", NominalOffsetHours: -8, Abbreviation: "PST", Location: "USA"},
}

// Default returns a registry holding the built-in facility table.
func Default() *Registry {
	return MustNew(defaultEntries...)
}
