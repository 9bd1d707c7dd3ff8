package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "facilities.yaml", `
facilities:
  - facility_id: GLOBAL_MUMBAI
    zone: Asia/Kolkata
    nominal_offset_hours: 5.5
    abbreviation: IST
    name: Global India HQ
    location: India
  - facility_id: GLOBAL_NYC
    zone: America/New_York
    nominal_offset_hours: -5
`)

	reg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	mumbai, err := reg.Lookup("GLOBAL_MUMBAI")
	require.NoError(t, err)
	assert.Equal(t, Entry{
		FacilityID:         "GLOBAL_MUMBAI",
		Zone:               "Asia/Kolkata",
		NominalOffsetHours: 5.5,
		Abbreviation:       "IST",
		Name:               "Global India HQ",
		Location:           "India",
	}, mumbai)

	nyc, err := reg.Lookup("GLOBAL_NYC")
	require.NoError(t, err)
	assert.Equal(t, -5.0, nyc.NominalOffsetHours)
	assert.Equal(t, "", nyc.Abbreviation, "abbreviation defaults to empty")
}

func TestLoadFile_CUE(t *testing.T) {
	path := writeFile(t, "facilities.cue", `
facilities: [
	{facility_id: "GLOBAL_TOKYO", zone: "Asia/Tokyo", nominal_offset_hours: 9, abbreviation: "JST"},
	{facility_id: "GLOBAL_LONDON", zone: "Europe/London", nominal_offset_hours: 0},
]
`)

	reg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	tokyo, err := reg.Lookup("GLOBAL_TOKYO")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", tokyo.Zone)
	assert.Equal(t, 9.0, tokyo.NominalOffsetHours)
}

func TestLoadFile_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "offset out of range",
			content: `
facilities:
  - facility_id: FAC_X
    zone: Asia/Kolkata
    nominal_offset_hours: 25
`,
		},
		{
			name: "unknown key",
			content: `
facilities:
  - facility_id: FAC_X
    zone: Asia/Kolkata
    nominal_offset_hours: 5.5
    default_zone: UTC
`,
		},
		{
			name: "missing zone",
			content: `
facilities:
  - facility_id: FAC_X
    nominal_offset_hours: 5.5
`,
		},
		{
			name: "invalid facility id",
			content: `
facilities:
  - facility_id: "FAC X"
    zone: Asia/Kolkata
    nominal_offset_hours: 5.5
`,
		},
		{
			name:    "unknown top-level key",
			content: "hospitals: []\n",
		},
		{
			name:    "empty file",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "facilities.yaml", tt.content)
			_, err := LoadFile(path)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, ErrCodeSchema, ve.Code)
			assert.Equal(t, path, ve.Source)
		})
	}
}

func TestLoadFile_DuplicateFacility(t *testing.T) {
	path := writeFile(t, "facilities.yml", `
facilities:
  - {facility_id: FAC_A, zone: UTC, nominal_offset_hours: 0}
  - {facility_id: FAC_A, zone: Asia/Tokyo, nominal_offset_hours: 9}
`)

	_, err := LoadFile(path)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrCodeDuplicateFacility, ve.Code)
	assert.Equal(t, "FAC_A", ve.FacilityID)
	assert.Equal(t, path, ve.Source)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "facilities.json", `{"facilities": []}`)

	_, err := LoadFile(path)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrCodeUnsupportedFile, ve.Code)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_EmptyFacilityList(t *testing.T) {
	reg, err := Parse("facilities.yaml", []byte("facilities: []\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}
