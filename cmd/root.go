package cmd

import (
	"fmt"
	"os"

	"github.com/CorrelAid/student_payment_form/inits"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "studentform",
	Short: "Student payment form and a local add-student service",
	Long: `studentform collects student details and the UTR of the fee payment,
then posts them to the add-student service.

  studentform form     # fill in and submit forms on this terminal
  studentform serve    # run a local add-student service to submit to`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return inits.LoadEnv(envFile)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading configuration")
}
