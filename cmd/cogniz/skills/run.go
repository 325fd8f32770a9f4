package skillscmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

const runLongDesc string = `Run a skill against the selected project.

The remaining arguments are joined into the skill input. --context adds
key=value pairs to the execution context and may be repeated. Markdown
output is rendered for the terminal unless --raw is given.

Examples:
  cogniz skills run memory-optimizer "Optimize all memories in current project"
  cogniz skills run api-doc-generator "Generate API documentation" --context workspace_path=$PWD
  cogniz skills run usage-analytics --raw "Generate usage report for last 7 days" > report.md`

const runShortDesc string = "Run a skill"

type runCommander struct {
	context []string
	project string
	raw     bool
}

func newRunCmd() *cobra.Command {
	cmder := &runCommander{}

	cmd := &cobra.Command{
		Use:   "run <skill-id> [input...]",
		Short: runShortDesc,
		Long:  runLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			execCtx, err := parseContext(cmder.context)
			if err != nil {
				return err
			}

			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return cmder.run(cmd, s, args[0], strings.Join(args[1:], " "), execCtx)
		},
	}

	cmd.Flags().StringArrayVar(&cmder.context, "context", nil, "Execution context as key=value (repeatable)")
	cmd.Flags().StringVarP(&cmder.project, "project", "p", "", "Project ID to run against (default: selected project)")
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print the output without markdown rendering")

	return cmd
}

func (c *runCommander) run(cmd *cobra.Command, s *session.Session, id, input string, execCtx map[string]any) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	errW := cmd.ErrOrStderr()

	var result *cogniz.SkillResult
	err := cliui.Step(errW, "Running "+id, func() error {
		var err error
		result, err = s.Client.ExecuteSkill(ctx, id, cogniz.SkillExecution{
			Input:     input,
			Context:   execCtx,
			ProjectID: c.project,
		})
		if err == nil && !result.Success {
			err = fmt.Errorf("skill failed: %s", result.Error)
		}
		return err
	})

	if result != nil {
		s.Tracker.Track(ctx, telemetry.EventExecuteSkill, map[string]any{
			"skillId": id,
			"success": result.Success,
		})
	}
	if err != nil {
		return err
	}

	if c.raw {
		fmt.Fprintln(w, result.Output)
	} else {
		rendered, err := cliui.RenderMarkdown(result.Output, 0)
		if err != nil {
			s.Logger.Debug("rendering skill output", "error", err)
		}
		fmt.Fprint(w, rendered)
	}

	if md := result.Metadata; md != nil {
		fmt.Fprintf(errW, "\n  %s %s", cliui.KeyStyle.Render("Execution time:"), cliui.ValueStyle.Render(fmt.Sprintf("%gms", md.ExecutionTimeMS)))
		if md.TokensUsed != nil && *md.TokensUsed > 0 {
			fmt.Fprintf(errW, "  %s %s", cliui.KeyStyle.Render("Tokens used:"), cliui.ValueStyle.Render(fmt.Sprint(*md.TokensUsed)))
		}
		fmt.Fprint(errW, "\n\n")
	}
	return nil
}

// parseContext turns key=value pairs into an execution context.
func parseContext(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --context %q (expected key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}
