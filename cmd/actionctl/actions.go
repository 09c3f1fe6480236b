package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/outbound-tracker/internal/service/action"
)

func logCmd(e *env) *cobra.Command {
	var (
		input            action.LogActionInput
		channel, outcome string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a new outbound action",
		Example: `  actionctl log --type dm --channel linkedin --note "intro to CTO"
  actionctl log --type comment --channel reddit --outcome response`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("channel") {
				input.Channel = &channel
			}
			if cmd.Flags().Changed("outcome") {
				input.Outcome = &outcome
			}
			if err := e.open(cmd.Context()); err != nil {
				return err
			}

			a, err := e.svc.Actions.LogAction(cmd.Context(), input)
			if err != nil {
				return describeError(err)
			}
			fmt.Fprintf(e.out, "%s Logged %s\n", okMark(), a.ID)
			renderAction(e.out, a)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.ActionType, "type", "t", "", "action type: dm, post, comment, followup")
	cmd.Flags().StringVarP(&channel, "channel", "c", "", "channel: linkedin, twitter, email, reddit")
	cmd.Flags().StringVarP(&input.Surface, "surface", "s", "", "surface: public (default) or private")
	cmd.Flags().StringVarP(&input.Note, "note", "n", "", "short note, at most 140 characters")
	cmd.Flags().StringVarP(&outcome, "outcome", "o", "", "outcome: response, qualified, next-step, closed-won, closed-lost")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func completeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an action as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			a, err := e.svc.Actions.CompleteAction(cmd.Context(), args[0])
			if err != nil {
				return describeError(err)
			}
			fmt.Fprintf(e.out, "%s Completed %s\n", okMark(), a.ID)
			return nil
		},
	}
}

func listCmd(e *env) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List actions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input action.ListActionsInput
			if date != "" {
				input.Date = &date
			}
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			actions, err := e.svc.Actions.ListActions(cmd.Context(), input)
			if err != nil {
				return describeError(err)
			}
			renderActionList(e.out, actions)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "only actions from this UTC day (YYYY-MM-DD)")
	return cmd
}
