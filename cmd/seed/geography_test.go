package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeography_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<geografia><region label=\" Kakheti \" slug=\"kakheti\"><ciudad label=\"Telavi\"/><ciudad label=\" \"/></region>" +
		"<region label=\"Ba\xf1os\"><ciudad label=\"Pe\xf1a\"/></region><region label=\"\"/></geografia>"

	regions, err := parseGeography(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "Kakheti", regions[0].Label)
	assert.Equal(t, "kakheti", regions[0].Slug)
	require.Len(t, regions[0].Cities, 1)
	assert.Equal(t, "Baños", regions[1].Label)
	assert.Equal(t, "Peña", regions[1].Cities[0].Label)
}

func TestParseGeography_CharsetDesconocido(t *testing.T) {
	doc := `<?xml version="1.0" encoding="KOI8-R"?><geografia/>`
	_, err := parseGeography(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDefaultGeography_CadaRegionTieneCiudades(t *testing.T) {
	for _, r := range defaultGeography() {
		assert.NotEmpty(t, r.Cities, r.Label)
	}
}
