package domain

import (
	"sort"
	"strings"
	"sync"
)

const (
	StandardPolicyName = "Standard"
	PremiumPolicyName  = "Premium"
)

const (
	reasonBalkan     = "Non-EU Balkan state, green card and written approval required"
	reasonConflict   = "Active conflict zone, written approval required"
	reasonSanctions  = "EU sanctions, entry with rental vehicles prohibited"
	reasonTurkey     = "Outside insured territory"
	reasonTurkeyAsia = "Asian part of the country is outside insured territory"
)

var (
	coreEurope    = []CountryCode{Germany, Austria, Netherlands, Belgium, Luxembourg, France, Denmark}
	outerEurope   = []CountryCode{Italy, Spain, Portugal, Sweden, Norway, Finland, Ireland}
	centralEurope = []CountryCode{Poland, CzechRepublic, Slovakia, Slovenia}
	southEast     = []CountryCode{Hungary, Croatia, Romania, Bulgaria}
	balkans       = []CountryCode{Serbia, Bosnia, Albania, NorthMacedonia, Montenegro}
)

var (
	standardOnce   sync.Once
	standardPolicy *CrossBorderPolicy
	premiumOnce    sync.Once
	premiumPolicy  *CrossBorderPolicy
)

// StandardPolicy is the default cross-border policy offered with every rental.
func StandardPolicy() *CrossBorderPolicy {
	standardOnce.Do(func() {
		standardPolicy = mustPolicy(StandardPolicyName, standardRules())
	})
	return standardPolicy
}

// PremiumPolicy widens coverage: no surcharge in western Europe and no
// permit for most of central Europe.
func PremiumPolicy() *CrossBorderPolicy {
	premiumOnce.Do(func() {
		premiumPolicy = mustPolicy(PremiumPolicyName, premiumRules())
	})
	return premiumPolicy
}

// PolicyByName looks a canonical policy up case-insensitively.
func PolicyByName(name string) (*CrossBorderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "standard":
		return StandardPolicy(), nil
	case "premium":
		return PremiumPolicy(), nil
	}
	return nil, NewNotFoundError("policy", name)
}

func PolicyNames() []string {
	names := []string{StandardPolicyName, PremiumPolicyName}
	sort.Strings(names)
	return names
}

func mustPolicy(name string, rules []CountryTravelRule) *CrossBorderPolicy {
	p, err := NewCrossBorderPolicy(name, rules)
	if err != nil {
		panic(err)
	}
	return p
}

func standardRules() []CountryTravelRule {
	var rules []CountryTravelRule

	for _, c := range coreEurope {
		rules = append(rules, AllowedRule(c, nil))
	}
	chFee := eur("5.00")
	rules = append(rules, AllowedRule(Switzerland, &chFee))

	outerFee := eur("7.50")
	for _, c := range outerEurope {
		rules = append(rules, AllowedRule(c, &outerFee))
	}
	for _, c := range centralEurope {
		rules = append(rules, PermitRequiredRule(c, eur("10.00"), false))
	}
	for _, c := range southEast {
		rules = append(rules, PermitRequiredRule(c, eur("15.00"), true))
	}
	rules = append(rules, PermitRequiredRule(UnitedKingdom, eur("12.50"), true))

	for _, c := range balkans {
		rules = append(rules, RestrictedRule(c, reasonBalkan, true))
	}
	rules = append(rules,
		RestrictedRule(Ukraine, reasonConflict, true),
		ProhibitedRule(Russia, reasonSanctions),
		ProhibitedRule(Belarus, reasonSanctions),
		ProhibitedRule(Turkey, reasonTurkey),
	)
	return rules
}

func premiumRules() []CountryTravelRule {
	var rules []CountryTravelRule

	for _, c := range coreEurope {
		rules = append(rules, AllowedRule(c, nil))
	}
	rules = append(rules, AllowedRule(Switzerland, nil))
	for _, c := range outerEurope {
		rules = append(rules, AllowedRule(c, nil))
	}

	centralFee := eur("5.00")
	for _, c := range append(append([]CountryCode{}, centralEurope...), Hungary, Croatia) {
		rules = append(rules, AllowedRule(c, &centralFee))
	}
	for _, c := range []CountryCode{Romania, Bulgaria, UnitedKingdom} {
		rules = append(rules, PermitRequiredRule(c, eur("10.00"), false))
	}
	for _, c := range balkans {
		rules = append(rules, PermitRequiredRule(c, eur("20.00"), true))
	}
	rules = append(rules,
		RestrictedRule(Ukraine, reasonConflict, true),
		ProhibitedRule(Russia, reasonSanctions),
		ProhibitedRule(Belarus, reasonSanctions),
		RestrictedRule(Turkey, reasonTurkeyAsia, true),
	)
	return rules
}
