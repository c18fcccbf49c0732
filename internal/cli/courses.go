package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	mentorsphere "github.com/mentorsphere/mentorsphere-go"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List enrolled courses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		courses, err := client.API().Courses.List(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(courses)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPROGRESS\tMODULES")
		for _, course := range courses {
			fmt.Fprintf(w, "%s\t%s\t%d%%\t%d/%d\n",
				course.ID, course.Title, course.Progress,
				course.CompletedModules, course.TotalModules)
		}
		return w.Flush()
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the role-appropriate dashboard summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		sess := client.Session()
		if !sess.Authenticated {
			return fmt.Errorf("not signed in")
		}

		out := cmd.OutOrStdout()
		switch sess.Role {
		case mentorsphere.RoleMentor:
			dash, err := client.API().Mentor.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Students: %d (%d at risk)\n", dash.TotalStudents, dash.AtRiskStudents)
			for _, s := range dash.Students {
				fmt.Fprintf(out, "  %-24s risk=%d (%s)\n", s.Name, s.RiskScore, s.RiskLevel)
			}
		default:
			dash, err := client.API().Student.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Study time: %d min, modules completed: %d\n",
				dash.Stats.TotalStudyTime, dash.Stats.CompletedModules)
			for _, course := range dash.Courses {
				fmt.Fprintf(out, "  %-32s %d%%\n", course.Title, course.Progress)
			}
		}
		return nil
	},
}

func init() {
	coursesCmd.Flags().Bool("json", false, "emit raw JSON")
	rootCmd.AddCommand(coursesCmd, dashboardCmd)
}
