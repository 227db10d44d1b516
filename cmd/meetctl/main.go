package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "meetctl",
		Short: "Command-line client for the meeting scheduling service",
		Long:  "meetctl authenticates against the meeting scheduling API, keeps the session on disk, and browses or creates meetings.",
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newMeetingCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the client version",
		Run: func(cmd *cobra.Command, args []string) {
			displayAppname("meetctl")
			fmt.Printf("meetctl %s\n", version)
		},
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
