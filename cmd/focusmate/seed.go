package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/focusmate/internal/profile"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [user]",
		Short: "Create the example profile",
		Long: `Create an example profile for a data engineer with a filled-in routine,
habits, insights and preferences. An existing profile only gains the
sections it is missing.`,
		Args: cobra.MaximumNArgs(1),
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

			if _, err := a.engine.Initialize(cmd.Context(), userID, exampleProfile()); err != nil {
				return fmt.Errorf("seeding %s: %w", userID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example profile ready for %s. Try 'focusmate show %s'.\n", userID, userID)
			return nil
		},
	}
}

// exampleProfile is a realistic starting profile.
func exampleProfile() *profile.Profile {
	return &profile.Profile{
		PersonalInfo: &profile.PersonalInfo{
			Name:   "Sam Rivera",
			Age:    28,
			Domain: "Data Engineering",
		},
		DailyRoutine: &profile.DailyRoutine{
			MealTimings:        profile.MealTimings{Breakfast: "08:00", Lunch: "13:00", Dinner: "20:00"},
			WorkingHours:       profile.WorkingHours{Start: "09:30", End: "18:30", Timezone: "Europe/Dublin"},
			WorkoutPreferences: []string{"swimming", "walking"},
		},
		HabitsAndBehaviors: &profile.HabitsAndBehaviors{
			ProcrastinationHabits: []string{
				"doom scrolling",
				"thinking the task is easy and delaying it",
				"gaming",
			},
			KnownBlockers: []string{
				"lack of clarity in task",
				"frequent context switching",
				"low energy after meals",
			},
		},
		ProductivityInsights: &profile.ProductivityInsights{
			BestFocusTimes: []string{"10:00-12:00", "15:00-17:00"},
			EnergyLevels:   profile.EnergyLevels{Morning: "high", Afternoon: "low", Evening: "medium"},
			HabitStreaks:   profile.HabitStreaks{WorkoutStreakDays: 5, TaskCompletionStreak: 3},
		},
		Preferences: &profile.Preferences{
			Notifications: profile.Notifications{
				ReminderFrequency: "every 2 hours",
				PreferredChannels: []string{"push", "email"},
			},
			MotivationStyle: "data-driven feedback and progress visualization",
		},
	}
}
