package cli

import (
	"fmt"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/spf13/cobra"
)

func newRouteCmd() *cobra.Command {
	var (
		policy     string
		days       int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "route COUNTRY...",
		Short: "Validate a cross-border route",
		Long:  "Check the given ISO country codes against a policy and show the surcharge for the rental length.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := services.NewPolicyService(nil)
			route := services.RouteCommand{PolicyName: policy, Countries: args, Days: days}

			result, err := svc.ValidateRoute(route)
			if err != nil {
				return err
			}
			surcharge, err := svc.Surcharge(route)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, struct {
					Validation rest.CrossBorderValidation `json:"validation"`
					Surcharge  rest.Money                 `json:"surcharge"`
				}{rest.ToAPICrossBorderValidation(result), rest.ToAPIMoney(surcharge.Total)})
			}

			fmt.Fprint(cmd.OutOrStdout(), renderRoute(surcharge.Policy, args, days, result, surcharge.Total))
			if !result.IsValid {
				return fmt.Errorf("route is not allowed under policy %s", policy)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "Standard", "Cross-border policy name")
	cmd.Flags().IntVar(&days, "days", 1, "Rental days for the surcharge")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
