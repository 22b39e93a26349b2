package domain_test

import (
	"testing"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPolicy_Switzerland(t *testing.T) {
	p := domain.StandardPolicy()

	assert.True(t, p.IsAllowed(domain.Switzerland))

	daily, ok := p.GetDailySurcharge(domain.Switzerland)
	require.True(t, ok)
	assertAmount(t, "5.00", daily.Net())

	total := p.CalculateTotalSurcharge([]domain.CountryCode{domain.Switzerland}, 5)
	assertAmount(t, "25.00", total.Net())
	assertAmount(t, "4.75", total.VAT())
	assertAmount(t, "29.75", total.Gross())
}

func TestStandardPolicy_Poland(t *testing.T) {
	p := domain.StandardPolicy()

	assert.True(t, p.IsAllowed(domain.Poland))
	assert.True(t, p.RequiresPermit(domain.Poland))

	result := p.Validate([]domain.CountryCode{domain.Poland})
	assert.True(t, result.IsValid)
	assert.True(t, result.RequiresPermit)
	assert.False(t, result.RequiresAdditionalInsurance)
	assert.Empty(t, result.Issues)
}

func TestCrossBorderPolicy_Validate(t *testing.T) {
	p := domain.StandardPolicy()

	t.Run("reports one issue per offending country", func(t *testing.T) {
		result := p.Validate([]domain.CountryCode{domain.Ukraine, domain.Russia})

		assert.False(t, result.IsValid)
		require.Len(t, result.Issues, 2)
		assert.Equal(t, "Ukraine requires special approval: Active conflict zone, written approval required", result.Issues[0])
		assert.Equal(t, "Russia not permitted: EU sanctions, entry with rental vehicles prohibited", result.Issues[1])
		assert.True(t, result.RequiresAdditionalInsurance)
	})

	t.Run("uncovered country is an issue", func(t *testing.T) {
		result := p.Validate([]domain.CountryCode{"JP"})

		assert.False(t, result.IsValid)
		assert.Equal(t, []string{"country JP not covered by policy Standard"}, result.Issues)
	})

	t.Run("issue count matches offending countries", func(t *testing.T) {
		route := []domain.CountryCode{domain.France, domain.Serbia, domain.Hungary, domain.Turkey, "US", domain.Italy}

		result := p.Validate(route)

		assert.Len(t, result.Issues, 3)
		assert.True(t, result.RequiresPermit)
		assert.True(t, result.RequiresAdditionalInsurance)
	})

	t.Run("empty route is valid", func(t *testing.T) {
		result := p.Validate(nil)

		assert.True(t, result.IsValid)
		assert.NotNil(t, result.Issues)
	})
}

func TestCrossBorderPolicy_CalculateTotalSurcharge(t *testing.T) {
	p := domain.StandardPolicy()

	t.Run("ignores duplicate countries", func(t *testing.T) {
		once := p.CalculateTotalSurcharge([]domain.CountryCode{domain.Italy}, 4)
		twice := p.CalculateTotalSurcharge([]domain.CountryCode{domain.Italy, domain.Italy}, 4)

		assert.True(t, once.Equal(twice))
		assertAmount(t, "30.00", twice.Net())
	})

	t.Run("sums distinct countries", func(t *testing.T) {
		total := p.CalculateTotalSurcharge([]domain.CountryCode{domain.Switzerland, domain.Italy, domain.Germany}, 3)

		assertAmount(t, "37.50", total.Net())
	})

	t.Run("missing surcharges count as zero", func(t *testing.T) {
		total := p.CalculateTotalSurcharge([]domain.CountryCode{domain.Russia, "JP", domain.Germany}, 10)

		assert.True(t, total.IsZero())
	})

	t.Run("non-positive days yield zero", func(t *testing.T) {
		assert.True(t, p.CalculateTotalSurcharge([]domain.CountryCode{domain.Switzerland}, 0).IsZero())
		assert.True(t, p.CalculateTotalSurcharge([]domain.CountryCode{domain.Switzerland}, -2).IsZero())
	})

	t.Run("VAT is derived once on the total", func(t *testing.T) {
		// 12.50 + 7.50 = 20.00 per day; 7 days = 140.00; VAT 26.60
		total := p.CalculateTotalSurcharge([]domain.CountryCode{domain.UnitedKingdom, domain.Ireland}, 7)

		assertAmount(t, "140.00", total.Net())
		assertAmount(t, "26.60", total.VAT())
	})
}

func TestCrossBorderPolicy_Listings(t *testing.T) {
	p := domain.StandardPolicy()

	assert.Contains(t, p.AllowedCountries(), domain.Switzerland)
	assert.NotContains(t, p.AllowedCountries(), domain.Poland)
	assert.ElementsMatch(t,
		[]domain.CountryCode{domain.Poland, domain.CzechRepublic, domain.Slovakia, domain.Slovenia,
			domain.Hungary, domain.Croatia, domain.Romania, domain.Bulgaria, domain.UnitedKingdom},
		p.PermitRequiredCountries())
	assert.ElementsMatch(t,
		[]domain.CountryCode{domain.Russia, domain.Belarus, domain.Turkey},
		p.ProhibitedCountries())
	assert.Len(t, p.Rules(), 33)
}

func TestPremiumPolicy(t *testing.T) {
	p := domain.PremiumPolicy()

	_, ok := p.GetDailySurcharge(domain.Switzerland)
	assert.False(t, ok)
	assert.False(t, p.RequiresPermit(domain.Poland))
	assert.True(t, p.RequiresPermit(domain.Serbia))
	assert.True(t, p.IsAllowed(domain.Serbia))
	assert.False(t, p.IsAllowed(domain.Turkey))
	assert.NotContains(t, p.ProhibitedCountries(), domain.Turkey)

	result := p.Validate([]domain.CountryCode{domain.Romania})
	assert.True(t, result.IsValid)
	assert.False(t, result.RequiresAdditionalInsurance)
}

func TestPolicyByName(t *testing.T) {
	p, err := domain.PolicyByName("premium")
	require.NoError(t, err)
	assert.Same(t, domain.PremiumPolicy(), p)

	p, err = domain.PolicyByName(" STANDARD ")
	require.NoError(t, err)
	assert.Equal(t, "Standard", p.Name())

	_, err = domain.PolicyByName("Gold")
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))

	assert.Equal(t, []string{"Premium", "Standard"}, domain.PolicyNames())
}

func TestNewCrossBorderPolicy(t *testing.T) {
	t.Run("builds custom policy", func(t *testing.T) {
		fee := euro(t, "3.00")
		p, err := domain.NewCrossBorderPolicy("Alpine", []domain.CountryTravelRule{
			domain.AllowedRule(domain.Austria, &fee),
			domain.ProhibitedRule(domain.Italy, "not insured"),
		})

		require.NoError(t, err)
		assert.True(t, p.IsAllowed(domain.Austria))
		assert.False(t, p.IsAllowed(domain.Germany))
		assert.Equal(t, []domain.CountryCode{domain.Italy}, p.ProhibitedCountries())
	})

	t.Run("rejects duplicate country", func(t *testing.T) {
		_, err := domain.NewCrossBorderPolicy("Broken", []domain.CountryTravelRule{
			domain.AllowedRule(domain.Austria, nil),
			domain.ProhibitedRule(domain.Austria, "twice"),
		})

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeDuplicateCountry))
	})
}
