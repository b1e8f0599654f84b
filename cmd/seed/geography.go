package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// geografia.xml:
//
//	<geografia>
//	  <region label="Kakheti" slug="kakheti">
//	    <ciudad label="Telavi"/>
//	  </region>
//	</geografia>
type geoFile struct {
	Regions []geoRegion `xml:"region"`
}

type geoRegion struct {
	Label  string    `xml:"label,attr"`
	Slug   string    `xml:"slug,attr"`
	Cities []geoCity `xml:"ciudad"`
}

type geoCity struct {
	Label string `xml:"label,attr"`
	Slug  string `xml:"slug,attr"`
}

// parseGeography lee el archivo de geografía. Acepta UTF-8, ISO-8859-1 y Windows-1252.
func parseGeography(r io.Reader) ([]geoRegion, error) {
	var f geoFile
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "iso-8859-1", "iso8859-1", "latin1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "windows-1252", "cp1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		case "utf-8", "":
			return input, nil
		}
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	out := make([]geoRegion, 0, len(f.Regions))
	for _, reg := range f.Regions {
		reg.Label = strings.TrimSpace(reg.Label)
		if reg.Label == "" {
			continue
		}
		cities := reg.Cities[:0]
		for _, c := range reg.Cities {
			c.Label = strings.TrimSpace(c.Label)
			if c.Label != "" {
				cities = append(cities, c)
			}
		}
		reg.Cities = cities
		out = append(out, reg)
	}
	return out, nil
}

func defaultGeography() []geoRegion {
	city := func(labels ...string) []geoCity {
		out := make([]geoCity, len(labels))
		for i, l := range labels {
			out[i] = geoCity{Label: l}
		}
		return out
	}
	return []geoRegion{
		{Label: "Kakheti", Cities: city("Telavi", "Sighnaghi", "Kvareli", "Gurjaani")},
		{Label: "Kartli", Cities: city("Gori", "Kaspi")},
		{Label: "Imereti", Cities: city("Kutaisi", "Zestaponi")},
		{Label: "Racha-Lechkhumi", Cities: city("Ambrolauri", "Tsageri")},
		{Label: "Guria", Cities: city("Ozurgeti")},
	}
}
