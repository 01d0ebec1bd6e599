// Package curve implements the curve enumeration subcommands.
package curve

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/silvistat/sindex/internal/conf"
	"github.com/silvistat/sindex/internal/errors"
	"github.com/silvistat/sindex/internal/sindex"
)

// Command creates the curve parent command
func Command(settings *conf.Settings) *cobra.Command {
	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "List and inspect the loaded curve table",
	}

	curveCmd.AddCommand(listCommand(settings), infoCommand(settings))

	return curveCmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	var speciesIdx int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the curves registered for a species",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			registry := engine.Registry()

			code, err := registry.SpeciesCode(speciesIdx)
			if err != nil {
				return err
			}
			fmt.Printf("curves for %s:\n", code)

			curveIdx, err := registry.FirstCurve(speciesIdx)
			for err == nil {
				cv, lookupErr := registry.Curve(curveIdx)
				if lookupErr != nil {
					return lookupErr
				}
				fmt.Printf("  %3d  %-32s %s\n", cv.Index, cv.Name, cv.ModelTag)
				curveIdx, err = registry.NextCurve(speciesIdx, curveIdx)
			}
			if !errors.Is(err, errors.ErrEndOfSequence) {
				return err
			}
			return nil
		},
	}

	listCmd.Flags().IntVar(&speciesIdx, "species", 0, "Species index to enumerate")
	return listCmd
}

func infoCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "info [curve index]",
		Short: "Show a curve's metadata and coefficients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("curve index must be an integer: %w", err)
			}

			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			registry := engine.Registry()

			cv, err := registry.Curve(idx)
			if err != nil {
				return err
			}
			code, _ := registry.SpeciesCode(cv.SpeciesIndex)

			fmt.Printf("%s, index %d (species %s)\n", cv.Name, cv.Index, code)
			fmt.Printf("  model:      %s\n", cv.ModelTag)
			fmt.Printf("  age domain: %s\n", cv.AgeDomain)
			if cv.Source != "" {
				fmt.Printf("  source:     %s\n", cv.Source)
			}
			if cv.Notes != "" {
				fmt.Printf("  notes:      %s\n", cv.Notes)
			}
			fmt.Println("  coefficients:")
			for _, coeff := range cv.Coefficients {
				fmt.Printf("    %-8s %g\n", coeff.Name, coeff.Value)
			}
			return nil
		},
	}
}
