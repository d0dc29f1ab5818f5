package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"retailpricing/internal/domain"
	"retailpricing/internal/logger"
	"retailpricing/internal/repository"
	"retailpricing/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type cliDependencies struct {
	RepricingService      service.RepricingService
	CatalogFileRepository repository.CatalogFileRepository
}

func newRootCmd(deps cliDependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "pricectl",
		Short:         "Compute retail prices from unit cost and strategic role",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newPriceCmd(deps),
		newRepriceCmd(deps),
		newRulesCmd(deps),
	)
	return root
}

func newPriceCmd(deps cliDependencies) *cobra.Command {
	var (
		costStr string
		roleStr string
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single product",
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := decimal.NewFromString(costStr)
			if err != nil {
				return fmt.Errorf("invalid --cost %q: %w", costStr, err)
			}
			role, err := domain.ParseStrategicRole(roleStr)
			if err != nil {
				return err
			}

			breakdown, err := deps.RepricingService.PriceProduct(cmd.Context(), cost, role)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "final price:    %s\n", breakdown.Result.FinalPrice.StringFixed(2))
			fmt.Fprintf(out, "applied margin: %s\n", breakdown.Result.AppliedMargin.StringFixed(4))
			fmt.Fprintf(out, "rule version:   %s\n", breakdown.Result.RuleVersion)
			if explain {
				fmt.Fprintf(out, "target margin:  %s\n", breakdown.TargetMargin.StringFixed(4))
				fmt.Fprintf(out, "raw price:      %s\n", breakdown.RawPrice.String())
				fmt.Fprintf(out, "safety net:     %v\n", breakdown.SafetyNetApplied)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&costStr, "cost", "", "unit cost, e.g. 4.20")
	cmd.Flags().StringVar(&roleStr, "role", "", "anchor, convenience, impulse or premium")
	cmd.Flags().BoolVar(&explain, "explain", false, "show the intermediate margin and raw price")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newRepriceCmd(deps cliDependencies) *cobra.Command {
	var (
		inPath  string
		outPath string
		persist bool
	)
	cmd := &cobra.Command{
		Use:   "reprice",
		Short: "Reprice a catalog csv with columns sku,name,cost,role",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(inPath)
			if err != nil {
				return fmt.Errorf("failed to open catalog: %w", err)
			}
			defer in.Close()

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			return repriceCatalog(cmd.Context(), deps, in, out, cmd.ErrOrStderr(), persist)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "catalog csv to read")
	cmd.Flags().StringVar(&outPath, "out", "", "where to write the priced csv (default stdout)")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the new prices in the database")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func repriceCatalog(ctx context.Context, deps cliDependencies, in io.Reader, out io.Writer, report io.Writer, persist bool) error {
	rows, err := deps.CatalogFileRepository.ReadRows(in)
	if err != nil {
		return err
	}

	run, err := deps.RepricingService.RepriceCatalog(ctx, service.RepriceCatalogInput{
		Rows:    rows,
		Persist: persist,
	})
	if err != nil {
		return err
	}

	if err := deps.CatalogFileRepository.WritePriced(out, run.Priced); err != nil {
		return err
	}

	fmt.Fprintf(report, "run %s: %d priced, %d rejected\n", run.RunID, len(run.Priced), len(run.Rejected))
	for _, r := range run.Rejected {
		fmt.Fprintf(report, "  rejected %q: %s\n", r.SKU, r.Reason)
	}
	if run.Summary.Count > 0 {
		fmt.Fprintf(
			report,
			"margin mean %.4f median %.4f min %.4f max %.4f\n",
			run.Summary.MeanMargin,
			run.Summary.MedianMargin,
			run.Summary.MinMargin,
			run.Summary.MaxMargin,
		)
	}
	logger.FromContext(ctx).Debugf("reprice wrote %d rows", len(run.Priced))
	return nil
}

func newRulesCmd(deps cliDependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active pricing rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := deps.RepricingService.Rules()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintf(w, "version\t%s\n\n", rules.Version)
			fmt.Fprintln(w, "cost below\tbase margin")
			for _, band := range rules.Bands {
				bound := "-"
				if band.UpperBound != nil {
					bound = band.UpperBound.StringFixed(2)
				}
				fmt.Fprintf(w, "%s\t%s\n", bound, band.BaseMargin.StringFixed(2))
			}

			fmt.Fprintln(w, "\nrole\tadjustment")
			for _, role := range domain.StrategicRoles() {
				adjustment, _ := rules.Adjustments.For(role)
				fmt.Fprintf(w, "%s\t%s\n", role, adjustment.StringFixed(2))
			}

			fmt.Fprintf(w, "\nmargin clamp\t[%s, %s]\n", rules.MinMargin.StringFixed(2), rules.MaxMargin.StringFixed(2))
			return w.Flush()
		},
	}
}
