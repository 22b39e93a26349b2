package cli

import (
	"fmt"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/spf13/cobra"
)

var catalogKinds = []string{"policies", "insurance", "kilometers", "categories"}

func newCatalogCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:       "catalog [policies|insurance|kilometers|categories]",
		Short:     "List the compiled-in price lists",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: catalogKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := catalogKinds
			if len(args) == 1 {
				kinds = args
			}

			catalog := services.NewCatalogService()
			policies := services.NewPolicyService(nil)

			if jsonOutput {
				out := map[string]any{}
				for _, kind := range kinds {
					switch kind {
					case "policies":
						list := make([]rest.Policy, 0, len(policies.ListPolicies()))
						for _, name := range policies.ListPolicies() {
							p, err := policies.GetPolicy(name)
							if err != nil {
								return err
							}
							list = append(list, rest.ToAPIPolicy(p))
						}
						out[kind] = list
					case "insurance":
						out[kind] = rest.ToAPIInsurancePackages(catalog.InsurancePackages())
					case "kilometers":
						out[kind] = rest.ToAPIKilometerPackages(catalog.KilometerPackages())
					case "categories":
						out[kind] = rest.ToAPIVehicleCategories(catalog.VehicleCategories())
					}
				}
				return renderJSON(cmd, out)
			}

			for _, kind := range kinds {
				switch kind {
				case "policies":
					for _, name := range policies.ListPolicies() {
						p, err := policies.GetPolicy(name)
						if err != nil {
							return err
						}
						fmt.Fprint(cmd.OutOrStdout(), renderPolicy(p))
					}
				case "insurance":
					fmt.Fprint(cmd.OutOrStdout(), renderInsurance(catalog.InsurancePackages()))
				case "kilometers":
					fmt.Fprint(cmd.OutOrStdout(), renderKilometers(catalog.KilometerPackages()))
				case "categories":
					fmt.Fprint(cmd.OutOrStdout(), renderCategories(catalog.VehicleCategories()))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
