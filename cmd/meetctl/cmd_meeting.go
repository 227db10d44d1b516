package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-meetings-client/meetings"
)

func newMeetingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Create and browse meetings",
	}
	cmd.AddCommand(newMeetingCreateCmd())
	cmd.AddCommand(newMeetingGetCmd())
	cmd.AddCommand(newMeetingListCmd())
	cmd.AddCommand(newMeetingMineCmd())
	return cmd
}

func newMeetingCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meeting",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			params := meetings.CreateParams{}
			params.Title, _ = cmd.Flags().GetString("title")
			params.StartDate, _ = cmd.Flags().GetString("start")
			params.EndDate, _ = cmd.Flags().GetString("end")
			params.Description, _ = cmd.Flags().GetString("description")

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			meeting, err := a.meetings.Create(ctx, params)
			if err != nil {
				exitError(a, err)
			}

			if a.cfg.GetOutput() == "json" {
				if err := printJSON(meeting); err != nil {
					exitError(a, err)
				}
				return
			}
			fmt.Printf("Created meeting %d: %s\n", meeting.ID, meeting.Title)
		},
	}
	cmd.Flags().String("title", "", "meeting title")
	cmd.Flags().String("start", "", "start timestamp, e.g. 2024-01-01T09:00")
	cmd.Flags().String("end", "", "end timestamp, e.g. 2024-01-01T09:30")
	cmd.Flags().String("description", "", "meeting description")
	return cmd
}

func newMeetingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a meeting with its attendees and tasks",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				exitError(a, fmt.Errorf("invalid meeting id %q", args[0]))
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			detail, err := a.meetings.Details(ctx, id)
			if err != nil {
				exitError(a, err)
			}

			if a.cfg.GetOutput() == "json" {
				if err := printJSON(detail); err != nil {
					exitError(a, err)
				}
				return
			}
			printMeetingDetail(detail)
		},
	}
}

func newMeetingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all meetings",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			list, err := a.meetings.All(ctx)
			if err != nil {
				exitError(a, err)
			}
			printMeetings(a, list)
		},
	}
}

func newMeetingMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the current user's meetings",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			userID, _ := cmd.Flags().GetInt64("user-id")
			if userID == 0 {
				user, err := a.gateway.CurrentUser(ctx)
				if err != nil {
					exitError(a, err)
				}
				userID = user.ID
			}

			list, err := a.meetings.ByUser(ctx, userID)
			if err != nil {
				exitError(a, err)
			}
			printMeetings(a, list)
		},
	}
	cmd.Flags().Int64("user-id", 0, "list meetings for this user instead of the logged-in one")
	return cmd
}

func printMeetings(a *app, list []meetings.Meeting) {
	if a.cfg.GetOutput() == "json" {
		if err := printJSON(list); err != nil {
			exitError(a, err)
		}
		return
	}
	if len(list) == 0 {
		fmt.Println("No meetings")
		return
	}
	for _, m := range list {
		fmt.Printf("%-6d %-16s %-16s %s\n",
			m.ID,
			m.StartDate.Format("2006-01-02 15:04"),
			m.EndDate.Format("2006-01-02 15:04"),
			m.Title,
		)
	}
}

func printMeetingDetail(detail meetings.MeetingDetail) {
	fmt.Printf("Meeting %d: %s\n", detail.ID, detail.Title)
	fmt.Printf("  %s -> %s (%d minutes)\n",
		detail.StartDate.Format("2006-01-02 15:04"),
		detail.EndDate.Format("2006-01-02 15:04"),
		detail.Duration,
	)
	if detail.Description != "" {
		fmt.Printf("  Description: %s\n", detail.Description)
	}
	if detail.Location != "" {
		fmt.Printf("  Location:    %s\n", detail.Location)
	}
	if detail.Notes != "" {
		fmt.Printf("  Notes:       %s\n", detail.Notes)
	}
	fmt.Printf("  Reschedules: %d  Reminder sent: %t  Completed: %t\n",
		detail.NumReschedules, detail.ReminderSent, detail.Completed)

	fmt.Printf("  Attendees (%d):\n", len(detail.Attendees))
	for _, attendee := range detail.Attendees {
		fmt.Printf("    - %s\n", attendee.Name)
	}
	fmt.Printf("  Tasks (%d):\n", len(detail.Tasks))
	for _, task := range detail.Tasks {
		fmt.Printf("    - %s\n", task.Description)
	}
}
