package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"endure/internal/bootstrap"
	dashdto "endure/internal/modules/dashboard/dto"
	"endure/internal/modules/session/dto"
	"endure/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "endure",
		Short:         "Endurance training coach",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
	}

	root.AddCommand(newTUICmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newSignupCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newDashboardCmd())
	root.AddCommand(newRecommendCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newWeeklyCmd())
	return root
}

func loadApp() (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp runs fn against a fully wired client with the persisted session
// already resolved.
func withApp(fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	ctx := context.Background()
	if err := app.SessionCLI.Initialize(ctx); err != nil {
		return err
	}
	return fn(ctx, app)
}

func runTUI() error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return bootstrap.RunTUI(app)
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the endure terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
	}
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				profile, err := app.SessionCLI.Login(ctx, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", profile.Name, profile.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func newSignupCmd() *cobra.Command {
	var input dto.SignupInput
	var age int
	var height, weight float64

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("age") {
				input.Age = &age
			}
			if cmd.Flags().Changed("height") {
				input.Height = &height
			}
			if cmd.Flags().Changed("weight") {
				input.Weight = &weight
			}
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				profile, err := app.SessionCLI.Signup(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account created, signed in as %s\n", profile.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input.Email, "email", "", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "account password")
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	cmd.Flags().StringVar(&input.Sport, "sport", "", "primary sport")
	cmd.Flags().StringVar(&input.ExperienceLevel, "experience", "", "beginner|intermediate|advanced")
	cmd.Flags().StringVar(&input.Goal, "goal", "", "training goal")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				status, err := app.SessionCLI.Status(ctx)
				if err != nil {
					return err
				}
				if status.Status != dto.StatusAuthenticated {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", status.Name, status.Email)
				return nil
			})
		},
	}
}

func newProfileCmd() *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "View and edit the athlete profile"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.SessionCLI.Profile(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s (%s)\n", p.Name, p.Email)
				if p.Age != nil {
					_, _ = fmt.Fprintf(out, "age: %d\n", *p.Age)
				}
				if p.Height != nil {
					_, _ = fmt.Fprintf(out, "height: %.1f cm\n", *p.Height)
				}
				if p.Weight != nil {
					_, _ = fmt.Fprintf(out, "weight: %.1f kg\n", *p.Weight)
				}
				if p.Sport != "" {
					_, _ = fmt.Fprintf(out, "sport: %s (%s)\n", p.Sport, p.ExperienceLevel)
				}
				if p.Goal != "" {
					_, _ = fmt.Fprintf(out, "goal: %s\n", p.Goal)
				}
				return nil
			})
		},
	}

	var name, sport, experience, goal string
	var age int
	var height, weight float64
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := dto.UpdateProfileInput{}
			if cmd.Flags().Changed("name") {
				input.Name = &name
			}
			if cmd.Flags().Changed("age") {
				input.Age = &age
			}
			if cmd.Flags().Changed("height") {
				input.Height = &height
			}
			if cmd.Flags().Changed("weight") {
				input.Weight = &weight
			}
			if cmd.Flags().Changed("sport") {
				input.Sport = &sport
			}
			if cmd.Flags().Changed("experience") {
				input.ExperienceLevel = &experience
			}
			if cmd.Flags().Changed("goal") {
				input.Goal = &goal
			}
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.SessionCLI.UpdateProfile(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile updated: %s\n", p.Name)
				return nil
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "display name")
	update.Flags().IntVar(&age, "age", 0, "age in years")
	update.Flags().Float64Var(&height, "height", 0, "height in cm")
	update.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	update.Flags().StringVar(&sport, "sport", "", "primary sport")
	update.Flags().StringVar(&experience, "experience", "", "beginner|intermediate|advanced")
	update.Flags().StringVar(&goal, "goal", "", "training goal")

	var current, next string
	password := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.ChangePassword(ctx, current, next); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "password changed")
				return nil
			})
		},
	}
	password.Flags().StringVar(&current, "current", "", "current password")
	password.Flags().StringVar(&next, "new", "", "new password")
	_ = password.MarkFlagRequired("current")
	_ = password.MarkFlagRequired("new")

	profile.AddCommand(show, update, password)
	return profile
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the training dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				snap, err := app.DashboardCLI.Fetch(ctx)
				if err != nil {
					return err
				}
				printSnapshot(cmd, snap)
				return nil
			})
		},
	}
}

func printSnapshot(cmd *cobra.Command, snap dashdto.SnapshotOutput) {
	out := cmd.OutOrStdout()
	m := snap.Metrics
	_, _ = fmt.Fprintf(out, "fitness (ctl):  %6.1f\n", m.CTL)
	_, _ = fmt.Fprintf(out, "fatigue (atl):  %6.1f\n", m.ATL)
	_, _ = fmt.Fprintf(out, "form (tsb):     %6.1f  %s [%s]\n", m.TSB, m.FormStatus, m.FormBand)
	_, _ = fmt.Fprintf(out, "recovery:       %6.0f  [%s]\n", m.RecoveryScore, m.RecoveryBand)
	_, _ = fmt.Fprintf(out, "weekly load:    %6.0f\n", m.WeeklyLoad)
	if m.RecoveryAdvice != "" {
		_, _ = fmt.Fprintf(out, "advice: %s\n", m.RecoveryAdvice)
	}
	if rec := snap.LatestRecommendation; rec != nil {
		_, _ = fmt.Fprintf(out, "\nrecommendation: %s, %d min, %s\n",
			rec.WorkoutType, rec.DurationMinutes, rec.Intensity)
		if rec.Description != "" {
			_, _ = fmt.Fprintln(out, rec.Description)
		}
		for _, w := range rec.Warnings {
			_, _ = fmt.Fprintf(out, "warning: %s\n", w)
		}
	}
	if len(snap.RecentWorkouts) > 0 {
		_, _ = fmt.Fprintln(out, "\nrecent workouts:")
		for _, w := range snap.RecentWorkouts {
			_, _ = fmt.Fprintf(out, "  %s  %-9s %4.0f min  load %.0f\n",
				w.Date.Format("2006-01-02"), w.WorkoutType, w.Duration, w.TrainingLoadScore)
		}
	}
}

func newRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Generate a fresh workout recommendation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				rec, err := app.DashboardCLI.Regenerate(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s, %d min, %s intensity\n",
					rec.WorkoutType, rec.DurationMinutes, rec.Intensity)
				if rec.Description != "" {
					_, _ = fmt.Fprintln(out, rec.Description)
				}
				for _, w := range rec.Warnings {
					_, _ = fmt.Fprintf(out, "warning: %s\n", w)
				}
				if rec.Reasoning != "" {
					_, _ = fmt.Fprintf(out, "reasoning: %s\n", rec.Reasoning)
				}
				return nil
			})
		},
	}
}

func parseDay(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

func newLogCmd() *cobra.Command {
	log := &cobra.Command{Use: "log", Short: "Log training data"}

	var date string

	var workoutType string
	var duration, distance float64
	var avgHR int
	workout := &cobra.Command{
		Use:   "workout",
		Short: "Log a workout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			input := dashdto.WorkoutInput{Date: day, WorkoutType: workoutType, Duration: duration}
			if cmd.Flags().Changed("distance") {
				input.Distance = &distance
			}
			if cmd.Flags().Changed("avg-hr") {
				input.AvgHR = &avgHR
			}
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				entry, err := app.DashboardCLI.LogWorkout(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s workout, load %.0f\n",
					entry.WorkoutType, entry.TrainingLoadScore)
				return nil
			})
		},
	}
	workout.Flags().StringVar(&workoutType, "type", "", "easy|tempo|interval|long|race|rest")
	workout.Flags().Float64Var(&duration, "duration", 0, "duration in minutes")
	workout.Flags().Float64Var(&distance, "distance", 0, "distance in km")
	workout.Flags().IntVar(&avgHR, "avg-hr", 0, "average heart rate")
	_ = workout.MarkFlagRequired("type")
	_ = workout.MarkFlagRequired("duration")

	var hours float64
	var quality int
	sleep := &cobra.Command{
		Use:   "sleep",
		Short: "Log a night of sleep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				entry, err := app.DashboardCLI.LogSleep(ctx, dashdto.SleepInput{
					Date: day, Hours: hours, QualityScore: quality,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %.1f h sleep, quality %d/10\n",
					entry.Hours, entry.QualityScore)
				return nil
			})
		},
	}
	sleep.Flags().Float64Var(&hours, "hours", 0, "hours slept")
	sleep.Flags().IntVar(&quality, "quality", 0, "quality score 1-10")
	_ = sleep.MarkFlagRequired("hours")
	_ = sleep.MarkFlagRequired("quality")

	var calories, protein, carbs, fats float64
	nutrition := &cobra.Command{
		Use:   "nutrition",
		Short: "Log a day of nutrition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				entry, err := app.DashboardCLI.LogNutrition(ctx, dashdto.NutritionInput{
					Date: day, Calories: calories, Protein: protein, Carbs: carbs, Fats: fats,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %.0f kcal\n", entry.Calories)
				return nil
			})
		},
	}
	nutrition.Flags().Float64Var(&calories, "calories", 0, "calories")
	nutrition.Flags().Float64Var(&protein, "protein", 0, "protein in grams")
	nutrition.Flags().Float64Var(&carbs, "carbs", 0, "carbs in grams")
	nutrition.Flags().Float64Var(&fats, "fats", 0, "fats in grams")
	_ = nutrition.MarkFlagRequired("calories")

	log.PersistentFlags().StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	log.AddCommand(workout, sleep, nutrition)
	return log
}

func newWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Print this week's activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				days, err := app.DashboardCLI.WeeklyActivity(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, d := range days {
					_, _ = fmt.Fprintf(out, "%-4s %4.0f min  load %6.0f  workouts %d\n",
						d.Day, d.Duration, d.TrainingLoad, d.WorkoutCount)
				}
				return nil
			})
		},
	}
}
