package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// quoteFile is the YAML request accepted by `pricing quote`.
type quoteFile struct {
	Policy           string      `yaml:"policy"`
	Category         string      `yaml:"category"`
	PickupAt         time.Time   `yaml:"pickup_at"`
	ReturnAt         time.Time   `yaml:"return_at"`
	Destinations     []string    `yaml:"destinations"`
	Insurance        string      `yaml:"insurance"`
	KilometerPackage string      `yaml:"kilometer_package"`
	EstimatedKm      int         `yaml:"estimated_km"`
	PaymentTermsDays int         `yaml:"payment_terms_days"`
	License          licenseFile `yaml:"license"`
}

type licenseFile struct {
	Number       string    `yaml:"number"`
	IssueCountry string    `yaml:"issue_country"`
	IssueDate    time.Time `yaml:"issue_date"`
	ExpiryDate   time.Time `yaml:"expiry_date"`
}

func (f quoteFile) toCommand() services.QuoteCommand {
	return services.QuoteCommand{
		PolicyName:       f.Policy,
		CategoryCode:     f.Category,
		PickupAt:         f.PickupAt,
		ReturnAt:         f.ReturnAt,
		Destinations:     f.Destinations,
		InsuranceType:    f.Insurance,
		KilometerPackage: f.KilometerPackage,
		EstimatedKm:      f.EstimatedKm,
		PaymentTermsDays: f.PaymentTermsDays,
		License: services.LicenseCommand{
			Number:       f.License.Number,
			IssueCountry: f.License.IssueCountry,
			IssueDate:    f.License.IssueDate,
			ExpiryDate:   f.License.ExpiryDate,
		},
	}
}

func loadQuoteFile(path string) (quoteFile, error) {
	var f quoteFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading quote file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing quote file: %w", err)
	}
	return f, nil
}

func newQuoteCmd() *cobra.Command {
	var (
		file       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a rental offline",
		Long:  "Evaluate a quote request read from a YAML file without storing it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadQuoteFile(file)
			if err != nil {
				return err
			}

			svc := services.NewQuoteService(memory.NewQuoteRepository(), nil, discardLogger(), 0)
			req, result, err := svc.Evaluate(f.toCommand())
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, rest.ToAPIQuoteResult(result))
			}
			fmt.Fprint(cmd.OutOrStdout(), renderQuote(req, result))
			if !result.Bookable {
				return fmt.Errorf("quote is not bookable")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML quote request")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
