// Package estimate implements the numeric estimation subcommands, one per
// core math entry point.
package estimate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/silvistat/sindex/internal/conf"
	"github.com/silvistat/sindex/internal/errors"
	"github.com/silvistat/sindex/internal/sindex"
)

// Command creates the estimate parent command
func Command(settings *conf.Settings) *cobra.Command {
	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "Run the growth curve estimations",
	}

	estimateCmd.AddCommand(
		siteIndexCommand(settings),
		heightCommand(settings),
		ageCommand(settings),
		y2bhCommand(settings),
		convertCommand(settings),
		siteClassCommand(settings),
	)

	return estimateCmd
}

// printResult writes one named numeric result in the configured format.
func printResult(settings *conf.Settings, name string, value float64) error {
	if settings.Output.Format == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]float64{name: value})
	}
	fmt.Printf("%s: %.4f\n", name, value)
	return nil
}

// reportError prints the failure kind alongside the message so callers can
// branch without parsing text.
func reportError(err error) error {
	if kind := errors.KindOf(err); kind != "" {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return err
}

func siteIndexCommand(settings *conf.Settings) *cobra.Command {
	var (
		speciesIdx int
		height     float64
		age        float64
		ageType    string
		method     string
	)

	cmd := &cobra.Command{
		Use:   "siteindex",
		Short: "Estimate site index from height and age",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := sindex.ParseAgeType(ageType)
			if err != nil {
				return reportError(err)
			}
			em, err := sindex.ParseEstimateMethod(method)
			if err != nil {
				return reportError(err)
			}
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			siteIndex, err := engine.SiteIndexFromHeightAge(speciesIdx, height, age, at, em)
			if err != nil {
				return reportError(err)
			}
			return printResult(settings, "site_index", siteIndex)
		},
	}

	cmd.Flags().IntVar(&speciesIdx, "species", 0, "Species index")
	cmd.Flags().Float64Var(&height, "height", 0, "Stand height, metres")
	cmd.Flags().Float64Var(&age, "age", 0, "Stand age, years")
	cmd.Flags().StringVar(&ageType, "age-type", "total", "Age basis: total or breast-height")
	cmd.Flags().StringVar(&method, "method", "iterate", "Estimate method: iterate or direct")
	return cmd
}

func heightCommand(settings *conf.Settings) *cobra.Command {
	var (
		curveIdx  int
		siteIndex float64
		age       float64
		y2bh      float64
		ageType   string
	)

	cmd := &cobra.Command{
		Use:   "height",
		Short: "Estimate height from age and site index",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := sindex.ParseAgeType(ageType)
			if err != nil {
				return reportError(err)
			}
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			height, err := engine.HeightFromAgeSiteIndex(curveIdx, siteIndex, age, y2bh, at)
			if err != nil {
				return reportError(err)
			}
			return printResult(settings, "height", height)
		},
	}

	cmd.Flags().IntVar(&curveIdx, "curve", 0, "Curve index")
	cmd.Flags().Float64Var(&siteIndex, "si", 0, "Site index, metres")
	cmd.Flags().Float64Var(&age, "age", 0, "Stand age, years")
	cmd.Flags().Float64Var(&y2bh, "y2bh", 0, "Years to breast height; 0 derives it from the curve")
	cmd.Flags().StringVar(&ageType, "age-type", "total", "Age basis: total or breast-height")
	return cmd
}

func ageCommand(settings *conf.Settings) *cobra.Command {
	var (
		curveIdx  int
		height    float64
		siteIndex float64
		ageType   string
	)

	cmd := &cobra.Command{
		Use:   "age",
		Short: "Estimate age from height and site index",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := sindex.ParseAgeType(ageType)
			if err != nil {
				return reportError(err)
			}
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			age, err := engine.AgeFromHeightSiteIndex(curveIdx, height, siteIndex, at)
			if err != nil {
				return reportError(err)
			}
			return printResult(settings, "age", age)
		},
	}

	cmd.Flags().IntVar(&curveIdx, "curve", 0, "Curve index")
	cmd.Flags().Float64Var(&height, "height", 0, "Stand height, metres")
	cmd.Flags().Float64Var(&siteIndex, "si", 0, "Site index, metres")
	cmd.Flags().StringVar(&ageType, "age-type", "total", "Age basis: total or breast-height")
	return cmd
}

func y2bhCommand(settings *conf.Settings) *cobra.Command {
	var (
		curveIdx  int
		siteIndex float64
	)

	cmd := &cobra.Command{
		Use:   "y2bh",
		Short: "Estimate years to breast height from site index",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			years, err := engine.YearsToBreastHeight(curveIdx, siteIndex)
			if err != nil {
				return reportError(err)
			}
			return printResult(settings, "years_to_breast_height", years)
		},
	}

	cmd.Flags().IntVar(&curveIdx, "curve", 0, "Curve index")
	cmd.Flags().Float64Var(&siteIndex, "si", 0, "Site index, metres")
	return cmd
}

func convertCommand(settings *conf.Settings) *cobra.Command {
	var (
		sourceIdx int
		targetIdx int
		siteIndex float64
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a site index between species",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			converted, err := engine.ConvertSiteIndex(sourceIdx, siteIndex, targetIdx)
			if err != nil {
				return reportError(err)
			}
			return printResult(settings, "site_index", converted)
		},
	}

	cmd.Flags().IntVar(&sourceIdx, "from", 0, "Source species index")
	cmd.Flags().IntVar(&targetIdx, "to", 0, "Target species index")
	cmd.Flags().Float64Var(&siteIndex, "si", 0, "Site index, metres")
	return cmd
}

func siteClassCommand(settings *conf.Settings) *cobra.Command {
	var (
		speciesIdx int
		class      string
		fiz        string
	)

	cmd := &cobra.Command{
		Use:   "siteclass",
		Short: "Map a qualitative site class to a site index",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := sindex.ParseSiteClass(class)
			if err != nil {
				return reportError(err)
			}
			zone, err := sindex.ParseFizZone(fiz)
			if err != nil {
				return reportError(err)
			}
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			siteIndex, err := engine.SiteIndexFromSiteClass(speciesIdx, sc, zone)
			if err != nil {
				return reportError(err)
			}
			return printResult(settings, "site_index", siteIndex)
		},
	}

	cmd.Flags().IntVar(&speciesIdx, "species", 0, "Species index")
	cmd.Flags().StringVar(&class, "class", "medium", "Site class: low, poor, medium or good")
	cmd.Flags().StringVar(&fiz, "fiz", "coast", "Forest inventory zone: coast or interior")
	return cmd
}
