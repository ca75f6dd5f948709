package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"mentorship-system/pkg/mentorship"

	"github.com/spf13/cobra"
)

func (a *app) signupCmd() *cobra.Command {
	var role string
	var in mentorship.SignUpInput
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a user or mentor account",
		Long:  "Create an account. Signing up does not sign you in; run \"mentorctl login\" afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRole(role)
			if err != nil {
				return err
			}
			if in.Password == "" {
				in.Password = os.Getenv("MENTORSHIP_PASSWORD")
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			profile, err := a.client.SignUp(ctx, r, in)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().StringVar(&role, "role", string(mentorship.RoleUser), "Account role: user or mentor")
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (or set MENTORSHIP_PASSWORD)")
	cmd.Flags().StringVar(&in.Description, "description", "", "About you")
	cmd.Flags().StringVar(&in.University, "university", "", "University (mentors)")
	cmd.Flags().StringVar(&in.Title, "title", "", "Title (mentors)")
	cmd.Flags().StringVar(&in.AdmissionType, "admission-type", "", "Admission type")
	cmd.Flags().StringSliceVar(&in.TargetUniversities, "target", nil, "Target universities (users)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var role, email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRole(role)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv("MENTORSHIP_PASSWORD")
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.client.SignIn(ctx, r, email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", email, r)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(mentorship.RoleUser), "Account role: user or mentor")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set MENTORSHIP_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			profile, err := a.client.Me(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), profile)
		},
	}
}

func (a *app) sendCmd() *cobra.Command {
	var message, receiverType string
	cmd := &cobra.Command{
		Use:   "send <receiver-id>",
		Short: "Send a mentorship request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rt := mentorship.Role(receiverType)
			if rt == "" {
				role, _ := a.client.Store().GetRole()
				rt = role.Counterpart()
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			req, err := a.client.SendMentorshipRequest(ctx, id, message, rt)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), req)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Request message")
	cmd.Flags().StringVar(&receiverType, "type", "", "Receiver role (default: the opposite of your role)")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <incoming|outgoing>",
		Short:     "List received or sent requests",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(mentorship.Incoming), string(mentorship.Outgoing)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.client.Store().IsAuthenticated() {
				return mentorship.ErrUnauthenticated
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			board := a.client.NewBoard(mentorship.BoardKind(args[0]))
			return a.print(cmd.OutOrStdout(), board.Refresh(ctx))
		},
	}
}

// transitionCmd accept/reject/cancel：刷新对应列表后执行变更
func (a *app) transitionCmd(use, short string, op func(*mentorship.Board, context.Context, uint) error) *cobra.Command {
	kind := mentorship.Incoming
	if use == "cancel" {
		kind = mentorship.Outgoing
	}
	return &cobra.Command{
		Use:   use + " <request-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()

			board := a.client.NewBoard(kind)
			board.Refresh(ctx)
			if err := op(board, ctx, id); err != nil {
				return err
			}
			updated, ok := board.Get(id)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Request %d updated\n", id)
				return nil
			}
			return a.print(cmd.OutOrStdout(), updated)
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show request counts, students and recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.client.Store().IsAuthenticated() {
				return mentorship.ErrUnauthenticated
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			return a.print(cmd.OutOrStdout(), a.client.GetDashboardStats(ctx))
		},
	}
}

func (a *app) feedCmd() *cobra.Command {
	var q mentorship.FeedQuery
	var kind string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse mentors or users",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Kind = mentorship.FeedKind(kind)
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			return a.print(cmd.OutOrStdout(), a.client.GetFeed(ctx, q))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "mentors or users (default: the opposite of your role)")
	cmd.Flags().IntVar(&q.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&q.Size, "size", 10, "Page size")
	cmd.Flags().StringVar(&q.Search, "search", "", "Filter by name, description or university")
	return cmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
