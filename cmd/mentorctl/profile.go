package main

import (
	"mentorship-system/pkg/mentorship"

	"github.com/spf13/cobra"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or edit profiles",
	}
	cmd.AddCommand(a.profileUpdateCmd(), a.profileMentorCmd())
	return cmd
}

// changed 只有显式传入的参数才会发送
func changed(cmd *cobra.Command, name string, v *string) *string {
	if cmd.Flags().Changed(name) {
		return v
	}
	return nil
}

func (a *app) profileUpdateCmd() *cobra.Command {
	var name, description, avatar, admission, title, university string
	var targets []string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of the signed-in profile",
		Long:  "Update the signed-in profile. Only the flags you pass are changed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := mentorship.ProfileUpdate{
				Name:          changed(cmd, "name", &name),
				Description:   changed(cmd, "description", &description),
				AvatarURL:     changed(cmd, "avatar-url", &avatar),
				AdmissionType: changed(cmd, "admission-type", &admission),
				Title:         changed(cmd, "title", &title),
				University:    changed(cmd, "university", &university),
			}
			if cmd.Flags().Changed("target") {
				in.TargetUniversities = &targets
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			profile, err := a.client.UpdateProfile(ctx, in)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&description, "description", "", "About you")
	cmd.Flags().StringVar(&avatar, "avatar-url", "", "Avatar URL")
	cmd.Flags().StringVar(&admission, "admission-type", "", "Admission type")
	cmd.Flags().StringVar(&title, "title", "", "Title (mentors)")
	cmd.Flags().StringVar(&university, "university", "", "University (mentors)")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "Target universities (users)")
	return cmd
}

func (a *app) profileMentorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mentor <mentor-id>",
		Short: "Show a mentor's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			profile, err := a.client.Mentor(ctx, id)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), profile)
		},
	}
}

func (a *app) resumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Manage your mentor resumes",
	}

	var in mentorship.ResumeInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a resume",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			r, err := a.client.CreateResume(ctx, in)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), r)
		},
	}
	create.Flags().StringVar(&in.University, "university", "", "University")
	create.Flags().StringVar(&in.Title, "title", "", "Title")
	create.Flags().StringVar(&in.Description, "description", "", "Description")
	_ = create.MarkFlagRequired("university")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List your resumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			resumes, err := a.client.ListResumes(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), resumes)
		},
	}

	get := &cobra.Command{
		Use:   "get <resume-id>",
		Short: "Show one of your resumes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			r, err := a.client.GetResume(ctx, id)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), r)
		},
	}

	var university, title, description string
	update := &cobra.Command{
		Use:   "update <resume-id>",
		Short: "Update fields of one of your resumes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			r, err := a.client.UpdateResume(ctx, id, mentorship.ResumeUpdate{
				University:  changed(cmd, "university", &university),
				Title:       changed(cmd, "title", &title),
				Description: changed(cmd, "description", &description),
			})
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), r)
		},
	}
	update.Flags().StringVar(&university, "university", "", "University")
	update.Flags().StringVar(&title, "title", "", "Title")
	update.Flags().StringVar(&description, "description", "", "Description")

	cmd.AddCommand(create, list, get, update)
	return cmd
}
