package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/neuroflow/internal/config"
	"github.com/sandeepkv93/neuroflow/internal/countdown"
	"github.com/sandeepkv93/neuroflow/internal/display"
	"github.com/sandeepkv93/neuroflow/internal/gateway"
	"github.com/sandeepkv93/neuroflow/internal/notify"
	"github.com/sandeepkv93/neuroflow/internal/update"
	"github.com/sandeepkv93/neuroflow/internal/views"
)

var errNoAssistant = errors.New("assistant offline: set GEMINI_API_KEY")

func tuiCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), *configPath)
		},
	}
}

func runTUI(ctx context.Context, configPath string) error {
	rt, err := openRuntime(ctx, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	styles := views.NewStyles(rt.app.Theme())
	rt.sync.SetSurface(styles)

	m := update.NewModel(update.Deps{
		App:      rt.app,
		Sync:     rt.sync,
		Engine:   rt.engine,
		Gateway:  rt.gateway,
		Notifier: notify.New(rt.cfg.DesktopNotifications),
		Styles:   styles,
		Config:   rt.cfg,
		Logger:   rt.logger,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func focusCmd(configPath *string) *cobra.Command {
	var asBreak bool
	cmd := &cobra.Command{
		Use:   "focus [minutes]",
		Short: "Run a focus or break countdown in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := openRuntime(ctx, *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			minutes, mode := rt.cfg.FocusWorkMinutes, countdown.ModeFocus
			if asBreak {
				minutes, mode = rt.cfg.FocusBreakMinutes, countdown.ModeBreak
			}
			if len(args) == 1 {
				n, err := strconv.Atoi(strings.TrimSuffix(args[0], "m"))
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid minutes %q", args[0])
				}
				minutes = n
			}

			session := countdown.NewSession(string(mode), minutes*60, mode)
			notifier := notify.New(rt.cfg.DesktopNotifications)
			return runCountdown(ctx, cmd, countdown.NewDriver(session, rt.engine, rt.cfg.TickInterval()), func(st countdown.State) string {
				return fmt.Sprintf("%s %s %s", strings.ToUpper(string(st.Mode)), display.Clock(st.Remaining), bar(st))
			}, func(st countdown.State) {
				n := notify.SessionEnded(string(st.Mode))
				if err := notifier.Send(n); err != nil {
					rt.logger.Debug("desktop notification failed", "error", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n", n.Title, n.Body)
			})
		},
	}
	cmd.Flags().BoolVarP(&asBreak, "break", "b", false, "run a break instead of a focus block")
	return cmd
}

func breatheCmd(configPath *string) *cobra.Command {
	var grounding bool
	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Guided circular breathing, or grounding 5-4-3-2-1",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := openRuntime(ctx, *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			kind := countdown.ExerciseBreath
			if grounding {
				kind = countdown.ExerciseGrounding
			}
			ex := countdown.NewExercise(kind)
			return runCountdown(ctx, cmd, countdown.NewDriver(ex.Session, rt.engine, rt.cfg.TickInterval()), func(st countdown.State) string {
				return fmt.Sprintf("%-32s %s", countdown.PromptAt(kind, st.Initial-st.Remaining), display.Clock(st.Remaining))
			}, func(countdown.State) {
				fmt.Fprintln(cmd.OutOrStdout(), "\nwell done, take that calm with you")
			})
		},
	}
	cmd.Flags().BoolVarP(&grounding, "grounding", "g", false, "grounding 5-4-3-2-1 instead of breathing")
	return cmd
}

// runCountdown drives d until it expires or ctx is cancelled, redrawing one
// status line per tick.
func runCountdown(ctx context.Context, cmd *cobra.Command, d *countdown.Driver, line func(countdown.State) string, onExpire func(countdown.State)) error {
	out := cmd.OutOrStdout()
	done := make(chan struct{})
	d.OnTick(func(st countdown.State) {
		fmt.Fprintf(out, "\r%s", line(st))
		if st.Expired {
			onExpire(st)
			close(done)
		}
	})
	defer d.Close()

	fmt.Fprintf(out, "%s", line(d.State()))
	if err := d.Start(); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		fmt.Fprintln(out)
		return nil
	}
}

func bar(st countdown.State) string {
	return display.Bar(display.ProgressFraction(st.Remaining, st.Initial), 20)
}

func breakdownCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown [goal]",
		Short: "Break a goal into 3-5 micro-steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.gateway == nil {
				return errNoAssistant
			}

			steps := rt.gateway.BreakDownGoal(cmd.Context(), strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if len(steps) == 0 {
				fmt.Fprintln(out, gateway.BreakDownFailed)
				return nil
			}
			fmt.Fprintln(out, gateway.StepsIntro)
			for i, s := range steps {
				fmt.Fprintf(out, "  %d. %s\n", i+1, s.Step)
			}
			return nil
		},
	}
}

func organizeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "organize [text]",
		Short: "Turn a brain dump into a summary and three key points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.gateway == nil {
				return errNoAssistant
			}

			thoughts, ok := rt.gateway.OrganizeThoughts(cmd.Context(), strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), gateway.OrganizeFailed)
				return nil
			}
			var md strings.Builder
			md.WriteString("## Summary\n\n" + thoughts.Summary + "\n\n## Key points\n\n")
			for _, p := range thoughts.KeyPoints {
				md.WriteString("- " + p + "\n")
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md.String(), 80))
			return nil
		},
	}
}

func stateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the persisted state as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			snap := rt.app.Snapshot()
			out, err := yaml.Marshal(struct {
				Theme     any  `yaml:"theme"`
				Points    int  `yaml:"dopamine_points"`
				Premium   bool `yaml:"premium"`
				HighScore int  `yaml:"high_score"`
				Tasks     any  `yaml:"tasks"`
			}{
				Theme:     snap.Theme,
				Points:    snap.Points,
				Premium:   snap.Premium,
				HighScore: rt.sync.LoadHighScore(cmd.Context()),
				Tasks:     snap.Tasks,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func configCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			key := "missing"
			if cfg.HasAPIKey() {
				key = "set"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# api key: %s\n", key)
			return nil
		},
	}
}
