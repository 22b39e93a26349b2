package services

import (
	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

type PolicyService struct {
	metrics application.Metrics
}

func NewPolicyService(metrics application.Metrics) *PolicyService {
	if metrics == nil {
		metrics = application.NopMetrics{}
	}
	return &PolicyService{metrics: metrics}
}

func (s *PolicyService) ListPolicies() []string {
	return domain.PolicyNames()
}

func (s *PolicyService) GetPolicy(name string) (*domain.CrossBorderPolicy, error) {
	p, err := domain.PolicyByName(name)
	if err != nil {
		return nil, application.NewNotFoundError("policy", name)
	}
	return p, nil
}

// ValidateRoute checks a route against the named policy. Unknown policies
// are NOT_FOUND; malformed country codes are INVALID_INPUT.
func (s *PolicyService) ValidateRoute(cmd RouteCommand) (domain.CrossBorderValidationResult, error) {
	p, countries, err := s.parseRoute(cmd)
	if err != nil {
		return domain.CrossBorderValidationResult{}, err
	}

	result := p.Validate(countries)
	s.metrics.ObserveRouteValidation(p.Name(), result.IsValid)
	return result, nil
}

func (s *PolicyService) Surcharge(cmd RouteCommand) (SurchargeResult, error) {
	p, countries, err := s.parseRoute(cmd)
	if err != nil {
		return SurchargeResult{}, err
	}
	if cmd.Days < 0 {
		return SurchargeResult{}, application.NewInvalidInputError(domain.NewOutOfRangeError("days", cmd.Days))
	}
	return SurchargeResult{
		Policy: p.Name(),
		Total:  p.CalculateTotalSurcharge(countries, cmd.Days),
	}, nil
}

func (s *PolicyService) parseRoute(cmd RouteCommand) (*domain.CrossBorderPolicy, []domain.CountryCode, error) {
	p, err := s.GetPolicy(cmd.PolicyName)
	if err != nil {
		return nil, nil, err
	}
	countries, err := domain.ParseCountryCodes(cmd.Countries)
	if err != nil {
		return nil, nil, application.NewInvalidInputError(err)
	}
	return p, countries, nil
}
