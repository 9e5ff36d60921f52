package f1_episode

import (
	"slices"

	"github.com/agnivade/levenshtein"
	"github.com/f1catchup/f1catchup/internal/util"
)

var countryCodeByName = map[string]string{
	"australia":            "au",
	"china":                "cn",
	"japan":                "jp",
	"bahrain":              "bh",
	"saudi arabia":         "sa",
	"usa":                  "us",
	"united states":        "us",
	"italy":                "it",
	"monaco":               "mc",
	"spain":                "es",
	"canada":               "ca",
	"austria":              "at",
	"uk":                   "gb",
	"great britain":        "gb",
	"united kingdom":       "gb",
	"belgium":              "be",
	"hungary":              "hu",
	"netherlands":          "nl",
	"azerbaijan":           "az",
	"singapore":            "sg",
	"mexico":               "mx",
	"brazil":               "br",
	"qatar":                "qa",
	"uae":                  "ae",
	"abu dhabi":            "ae",
	"united arab emirates": "ae",
	"portugal":             "pt",
	"turkey":               "tr",
	"turkiye":              "tr",
	"russia":               "ru",
	"germany":              "de",
	"france":               "fr",
	"malaysia":             "my",
	"korea":                "kr",
	"south korea":          "kr",
	"india":                "in",
	"vietnam":              "vn",
	"las vegas":            "us",
	"miami":                "us",
	"emilia romagna":       "it",
	"imola":                "it",
	"south africa":         "za",
	"thailand":             "th",
	"argentina":            "ar",
	"switzerland":          "ch",
	"sweden":               "se",
	"morocco":              "ma",
	"rwanda":               "rw",
}

var countryNames = func() []string {
	names := make([]string, 0, len(countryCodeByName))
	for name := range countryCodeByName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}()

const unknownCountryCode = "un"

// CountryCode resolves a country name, tolerating small spelling
// differences on longer names.
func CountryCode(country string) string {
	name := util.NormalizeName(country)
	if name == "" {
		return unknownCountryCode
	}
	if code, ok := countryCodeByName[name]; ok {
		return code
	}

	bestCode, bestDistance := unknownCountryCode, 3
	for _, candidate := range countryNames {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDistance && d*4 <= len(name) {
			bestCode, bestDistance = countryCodeByName[candidate], d
		}
	}
	return bestCode
}

func FlagURL(prefix string, country string) string {
	return prefix + CountryCode(country) + ".png"
}
