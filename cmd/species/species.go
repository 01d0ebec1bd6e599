// Package species implements the species enumeration subcommands.
package species

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/silvistat/sindex/internal/conf"
	"github.com/silvistat/sindex/internal/errors"
	"github.com/silvistat/sindex/internal/logging"
	"github.com/silvistat/sindex/internal/sindex"
)

// Command creates the species parent command
func Command(settings *conf.Settings) *cobra.Command {
	speciesCmd := &cobra.Command{
		Use:   "species",
		Short: "List and inspect the loaded species table",
	}

	speciesCmd.AddCommand(listCommand(settings), infoCommand(settings))

	return speciesCmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every species in table order",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			registry := engine.Registry()

			idx, err := registry.FirstSpecies()
			for err == nil {
				sp, lookupErr := registry.Species(idx)
				if lookupErr != nil {
					return lookupErr
				}
				fmt.Printf("%3d  %-4s %s\n", sp.Index, sp.Code, sp.Name)
				idx, err = registry.NextSpecies(idx)
			}
			if !errors.Is(err, errors.ErrEndOfSequence) {
				return err
			}
			return nil
		},
	}
}

func infoCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "info [species index]",
		Short: "Show one species with its curves and defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("species index must be an integer: %w", err)
			}

			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			registry := engine.Registry()

			sp, err := registry.Species(idx)
			if err != nil {
				logging.Error("species lookup failed", "species_index", idx, "error", err)
				return err
			}

			fmt.Printf("%s (%s), index %d\n", sp.Name, sp.Code, sp.Index)
			if curveIdx, err := registry.DefaultCurve(idx); err == nil {
				name, _ := registry.CurveName(curveIdx)
				fmt.Printf("  default curve:    %d  %s\n", curveIdx, name)
			}
			if curveIdx, err := registry.DefaultGICurve(idx); err == nil {
				name, _ := registry.CurveName(curveIdx)
				fmt.Printf("  default GI curve: %d  %s\n", curveIdx, name)
			}
			for _, regen := range []sindex.RegenerationType{sindex.RegenNatural, sindex.RegenPlanted} {
				if curveIdx, err := registry.DefaultCurveForRegen(idx, regen); err == nil {
					name, _ := registry.CurveName(curveIdx)
					fmt.Printf("  default (%s): %d  %s\n", regen, curveIdx, name)
				}
			}

			fmt.Println("  curves:")
			curveIdx, err := registry.FirstCurve(idx)
			for err == nil {
				name, nameErr := registry.CurveName(curveIdx)
				if nameErr != nil {
					return nameErr
				}
				fmt.Printf("    %3d  %s\n", curveIdx, name)
				curveIdx, err = registry.NextCurve(idx, curveIdx)
			}
			if !errors.Is(err, errors.ErrEndOfSequence) {
				return err
			}
			return nil
		},
	}
}
