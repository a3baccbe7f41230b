// Package main is the photorank CLI: it scores a batch of photos and ranks
// them by the fused quality score.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "photorank",
	Short: "Score and rank photos by technical, aesthetic and expression quality",
	Long: `photorank runs the photo scoring engine over a batch of photos: each one
is fetched, analyzed for sharpness, noise, exposure, color harmony,
composition and contrast, combined with externally detected facial
expressions, and the batch is ranked by the fused overall score.

Scoring is deterministic: the same inputs always produce the same ranking.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./photorank.yaml or ~/.config/photorank/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("photorank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "photorank"))
		}
	}

	viper.SetEnvPrefix("PHOTORANK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
