package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lingocalm",
	Short: "A calm daily vocabulary lesson",
	Long: `LingoCalm teaches a handful of words a day in Spanish, French, Italian,
German or Japanese. Practice every word to finish the day and grow your streak.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/lingocalm/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database file (overrides storage.path)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: local or remote (overrides storage.backend)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(signUpCmd)
	rootCmd.AddCommand(signInCmd)
	rootCmd.AddCommand(signOutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(languageCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
