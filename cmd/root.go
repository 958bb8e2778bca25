package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reelforge",
	Short: "reelforge media automation server",
	Long:  `reelforge watches for new movie and TV releases, grabs them from configured indexers, and imports them into a managed library.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

// initConfig sets viper configurations and default values.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("REELFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("tmdb.scheme", "https")
	viper.SetDefault("tmdb.host", "api.themoviedb.org")
	viper.SetDefault("tmdb.apikey", "")

	viper.SetDefault("prowlarr.scheme", "http")
	viper.SetDefault("prowlarr.host", "localhost:9696")
	viper.SetDefault("prowlarr.apikey", "")

	viper.SetDefault("library.movie", "/media/movies")
	viper.SetDefault("library.tv", "/media/tv")

	viper.SetDefault("storage.filepath", "reelforge.db")

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("log.level", "info")
}
