package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/silvistat/sindex/cmd/curve"
	"github.com/silvistat/sindex/cmd/estimate"
	"github.com/silvistat/sindex/cmd/species"
	"github.com/silvistat/sindex/internal/buildinfo"
	"github.com/silvistat/sindex/internal/conf"
	"github.com/silvistat/sindex/internal/sindex"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sindex",
		Short: "Forest stand site index estimation",
		Long: "Estimates site index, stand age, tree height and years to breast height\n" +
			"from species-specific growth curves.",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		species.Command(settings),
		curve.Command(settings),
		estimate.Command(settings),
		versionCommand(settings),
	)

	return rootCmd
}

// setupFlags binds the global flags through viper so the config file, the
// environment and the command line agree on precedence.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Tables.Path, "tables", settings.Tables.Path, "Path to a curve coefficient table overriding the embedded one")
	rootCmd.PersistentFlags().StringVar(&settings.Output.Format, "format", settings.Output.Format, "Output format: text or json")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("tables.path", rootCmd.PersistentFlags().Lookup("tables"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
}

func versionCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and coefficient table versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := sindex.Open(settings.Tables.Path)
			if err != nil {
				return err
			}
			info := buildinfo.Current()
			fmt.Printf("sindex %s (built %s)\n", info.Version, info.BuildDate)
			fmt.Printf("curve table %s (%d species, %d curves)\n",
				engine.Registry().VersionNumber(),
				engine.Registry().SpeciesCount(),
				engine.Registry().CurveCount())
			return nil
		},
	}
}
