package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/focusmate/internal/profile"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [user]",
		Short: "Print a readable summary of a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			userID, err := a.userFromArgs(args)
			if err != nil {
				return err
			}

			p, err := a.engine.Lookup(cmd.Context(), userID)
			if errors.Is(err, profile.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No profile found for %s. Run 'focusmate seed' or connect an agent to create one.\n", userID)
				return nil
			}
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), userID, p)
			return nil
		},
	}
}

// writeSummary prints the non-empty parts of a profile.
func writeSummary(w io.Writer, userID string, p *profile.Profile) {
	fmt.Fprintf(w, "--- Productivity profile: %s ---\n", userID)

	if pi := p.PersonalInfo; pi != nil {
		fmt.Fprintln(w, "\nPersonal info:")
		line(w, "Name", pi.Name)
		if pi.Age > 0 {
			line(w, "Age", fmt.Sprint(pi.Age))
		}
		line(w, "Domain", pi.Domain)
	}

	if r := p.DailyRoutine; r != nil {
		fmt.Fprintln(w, "\nDaily routine:")
		line(w, "Meals", pairs(
			"breakfast", r.MealTimings.Breakfast,
			"lunch", r.MealTimings.Lunch,
			"dinner", r.MealTimings.Dinner,
		))
		line(w, "Work hours", pairs(
			"start", r.WorkingHours.Start,
			"end", r.WorkingHours.End,
			"timezone", r.WorkingHours.Timezone,
		))
		line(w, "Workouts", strings.Join(r.WorkoutPreferences, ", "))
	}

	if h := p.HabitsAndBehaviors; h != nil {
		fmt.Fprintln(w, "\nHabits & blockers:")
		line(w, "Procrastination", strings.Join(h.ProcrastinationHabits, "; "))
		line(w, "Blockers", strings.Join(h.KnownBlockers, "; "))
	}

	if t := p.TaskTracking; t != nil {
		fmt.Fprintln(w, "\nTasks:")
		fmt.Fprintf(w, "   Current: %d\n", len(t.CurrentTasks))
		for _, task := range t.CurrentTasks {
			due := ""
			if task.DueDate != "" {
				due = ", due " + task.DueDate
			}
			fmt.Fprintf(w, "     - [%s] %s (%s%s)\n", task.TaskID, task.Description, task.Priority, due)
		}
		fmt.Fprintf(w, "   Completed: %d\n", len(t.CompletedTasks))
	}

	if ins := p.ProductivityInsights; ins != nil {
		fmt.Fprintln(w, "\nProductivity insights:")
		line(w, "Best focus times", strings.Join(ins.BestFocusTimes, ", "))
		line(w, "Energy", pairs(
			"morning", ins.EnergyLevels.Morning,
			"afternoon", ins.EnergyLevels.Afternoon,
			"evening", ins.EnergyLevels.Evening,
		))
		fmt.Fprintf(w, "   Streaks: workout %d days, task completion %d\n",
			ins.HabitStreaks.WorkoutStreakDays, ins.HabitStreaks.TaskCompletionStreak)
	}

	if pr := p.Preferences; pr != nil {
		fmt.Fprintln(w, "\nPreferences:")
		line(w, "Reminders", pr.Notifications.ReminderFrequency)
		line(w, "Channels", strings.Join(pr.Notifications.PreferredChannels, ", "))
		line(w, "Motivation", pr.MotivationStyle)
	}

	if m := p.Metadata; m != nil {
		fmt.Fprintf(w, "\nLast updated %s (schema v%d)\n", m.LastUpdated.Format("2006-01-02 15:04 MST"), m.Version)
	}
}

// line prints "label: value" unless value is empty.
func line(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "   %s: %s\n", label, value)
}

// pairs renders the non-empty key/value pairs of kv.
func pairs(kv ...string) string {
	var parts []string
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			parts = append(parts, kv[i]+" "+kv[i+1])
		}
	}
	return strings.Join(parts, ", ")
}
