// Package cmd is for command line interactions with the simdna application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "simdna",
	Short: `Generate synthetic DNA benchmark datasets with known motif embeddings.
Sequences are labeled with the exact position of every embedded motif`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Int("workers", 0, "number of sequences to generate in parallel (0 = all CPUs)")
	rootCmd.PersistentFlags().Bool("skip-failures", false, "log and continue past failed sequences instead of aborting")
	rootCmd.PersistentFlags().Int("placement-attempts", 1000, "random placement attempts per occurrence before failing")
	rootCmd.PersistentFlags().Float64("gc-content", 0.4, "GC fraction of the background composition")

	// Bind the parameters to viper
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("skip-failures", rootCmd.PersistentFlags().Lookup("skip-failures"))
	viper.BindPFlag("placement-attempts", rootCmd.PersistentFlags().Lookup("placement-attempts"))
	viper.BindPFlag("gc-content", rootCmd.PersistentFlags().Lookup("gc-content"))
}

// initConfig reads in an optional settings file for the flags that are
// rarely changed per run.
func initConfig() {
	viper.SetConfigName("settings")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("simdna")
	viper.AutomaticEnv()

	// the settings file is optional; flags and defaults cover everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read settings file: %v", err)
		}
	}
}
