package domain

import (
	"fmt"
	"strings"
)

// CountryCode is an ISO 3166-1 alpha-2 code.
// Invariant: exactly two uppercase ASCII letters. Construct via NewCountryCode
// at trust boundaries; the named constants below are already normalized.
type CountryCode string

const (
	Germany        CountryCode = "DE"
	Austria        CountryCode = "AT"
	Switzerland    CountryCode = "CH"
	France         CountryCode = "FR"
	Italy          CountryCode = "IT"
	Netherlands    CountryCode = "NL"
	Belgium        CountryCode = "BE"
	Luxembourg     CountryCode = "LU"
	Denmark        CountryCode = "DK"
	Spain          CountryCode = "ES"
	Portugal       CountryCode = "PT"
	Sweden         CountryCode = "SE"
	Norway         CountryCode = "NO"
	Finland        CountryCode = "FI"
	Ireland        CountryCode = "IE"
	Poland         CountryCode = "PL"
	CzechRepublic  CountryCode = "CZ"
	Slovakia       CountryCode = "SK"
	Slovenia       CountryCode = "SI"
	Hungary        CountryCode = "HU"
	Croatia        CountryCode = "HR"
	Romania        CountryCode = "RO"
	Bulgaria       CountryCode = "BG"
	UnitedKingdom  CountryCode = "GB"
	Serbia         CountryCode = "RS"
	Bosnia         CountryCode = "BA"
	Albania        CountryCode = "AL"
	NorthMacedonia CountryCode = "MK"
	Montenegro     CountryCode = "ME"
	Ukraine        CountryCode = "UA"
	Russia         CountryCode = "RU"
	Belarus        CountryCode = "BY"
	Turkey         CountryCode = "TR"
)

type countryInfo struct {
	nameEN   string
	nameDE   string
	eu       bool
	schengen bool
}

var countries = map[CountryCode]countryInfo{
	Germany:        {"Germany", "Deutschland", true, true},
	Austria:        {"Austria", "Österreich", true, true},
	Switzerland:    {"Switzerland", "Schweiz", false, true},
	France:         {"France", "Frankreich", true, true},
	Italy:          {"Italy", "Italien", true, true},
	Netherlands:    {"Netherlands", "Niederlande", true, true},
	Belgium:        {"Belgium", "Belgien", true, true},
	Luxembourg:     {"Luxembourg", "Luxemburg", true, true},
	Denmark:        {"Denmark", "Dänemark", true, true},
	Spain:          {"Spain", "Spanien", true, true},
	Portugal:       {"Portugal", "Portugal", true, true},
	Sweden:         {"Sweden", "Schweden", true, true},
	Norway:         {"Norway", "Norwegen", false, true},
	Finland:        {"Finland", "Finnland", true, true},
	Ireland:        {"Ireland", "Irland", true, false},
	Poland:         {"Poland", "Polen", true, true},
	CzechRepublic:  {"Czech Republic", "Tschechien", true, true},
	Slovakia:       {"Slovakia", "Slowakei", true, true},
	Slovenia:       {"Slovenia", "Slowenien", true, true},
	Hungary:        {"Hungary", "Ungarn", true, true},
	Croatia:        {"Croatia", "Kroatien", true, true},
	Romania:        {"Romania", "Rumänien", true, true},
	Bulgaria:       {"Bulgaria", "Bulgarien", true, true},
	UnitedKingdom:  {"United Kingdom", "Vereinigtes Königreich", false, false},
	Serbia:         {"Serbia", "Serbien", false, false},
	Bosnia:         {"Bosnia and Herzegovina", "Bosnien und Herzegowina", false, false},
	Albania:        {"Albania", "Albanien", false, false},
	NorthMacedonia: {"North Macedonia", "Nordmazedonien", false, false},
	Montenegro:     {"Montenegro", "Montenegro", false, false},
	Ukraine:        {"Ukraine", "Ukraine", false, false},
	Russia:         {"Russia", "Russland", false, false},
	Belarus:        {"Belarus", "Belarus", false, false},
	Turkey:         {"Turkey", "Türkei", false, false},
}

// NewCountryCode trims and uppercases raw and requires exactly two letters.
func NewCountryCode(raw string) (CountryCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || !isASCIILetter(code[0]) || !isASCIILetter(code[1]) {
		return "", NewInvalidArgumentError("countryCode", fmt.Sprintf("must be exactly 2 letters, got %q", raw))
	}
	return CountryCode(code), nil
}

// ParseCountryCodes converts raw codes in order, failing on the first bad one.
func ParseCountryCodes(raw []string) ([]CountryCode, error) {
	codes := make([]CountryCode, 0, len(raw))
	for _, r := range raw {
		c, err := NewCountryCode(r)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func (c CountryCode) String() string {
	return string(c)
}

func (c CountryCode) IsEUMember() bool {
	return countries[c].eu
}

func (c CountryCode) IsSchengenMember() bool {
	return countries[c].schengen
}

// DisplayName returns the country name in "de" or "en" (default), or the code
// itself for countries the catalog does not know.
func (c CountryCode) DisplayName(lang string) string {
	info, ok := countries[c]
	if !ok {
		return string(c)
	}
	if strings.EqualFold(lang, "de") {
		return info.nameDE
	}
	return info.nameEN
}

// Name is the English display name.
func (c CountryCode) Name() string {
	return c.DisplayName("en")
}
