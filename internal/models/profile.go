package models

import "time"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	MeasurementSystemMetric   = "metric"
	MeasurementSystemImperial = "imperial"
)

type UserProfile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	FitnessGoals FitnessGoals `json:"fitnessGoals"`
	Preferences  Preferences  `json:"preferences"`
	Settings     Settings     `json:"settings"`
}

type PersonalInfo struct {
	Name          string     `json:"name"`
	Age           FlexString `json:"age"`
	Gender        string     `json:"gender"`
	Height        FlexString `json:"height"`
	Weight        FlexString `json:"weight"`
	ActivityLevel string     `json:"activityLevel"`
}

type FitnessGoals struct {
	PrimaryGoal      string      `json:"primaryGoal"`
	TargetWeight     FlexString  `json:"targetWeight"`
	WorkoutFrequency FlexString  `json:"workoutFrequency"`
	TargetDate       string      `json:"targetDate"`
	Milestones       []Milestone `json:"milestones"`
}

type Milestone struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Date          time.Time  `json:"date"`
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

type Preferences struct {
	Equipment           []string `json:"equipment"`
	DietaryPreferences  []string `json:"dietaryPreferences"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	WorkoutPreferences  []string `json:"workoutPreferences"`
}

type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	AppSettings   AppSettings          `json:"appSettings"`
	Privacy       PrivacySettings      `json:"privacy"`
	Sync          SyncSettings         `json:"sync"`
}

type NotificationSettings struct {
	Enabled            bool `json:"enabled"`
	WorkoutReminders   bool `json:"workoutReminders"`
	ProgressUpdates    bool `json:"progressUpdates"`
	NutritionReminders bool `json:"nutritionReminders"`
	AchievementAlerts  bool `json:"achievementAlerts"`
}

type AppSettings struct {
	DarkMode          bool   `json:"darkMode"`
	AIProvider        string `json:"aiProvider"`
	MeasurementSystem string `json:"measurementSystem"`
}

type PrivacySettings struct {
	ShareWorkoutData             bool `json:"shareWorkoutData"`
	AllowAnonymousDataCollection bool `json:"allowAnonymousDataCollection"`
}

type SyncSettings struct {
	AutoSyncEnabled bool   `json:"autoSyncEnabled"`
	SyncFrequency   string `json:"syncFrequency"`
}

func DefaultUserProfile() UserProfile {
	return UserProfile{
		FitnessGoals: FitnessGoals{
			Milestones: []Milestone{},
		},
		Preferences: Preferences{
			Equipment:           []string{},
			DietaryPreferences:  []string{},
			DietaryRestrictions: []string{},
			WorkoutPreferences:  []string{},
		},
		Settings: Settings{
			Notifications: NotificationSettings{
				Enabled:            true,
				WorkoutReminders:   true,
				ProgressUpdates:    true,
				NutritionReminders: true,
				AchievementAlerts:  true,
			},
			AppSettings: AppSettings{
				AIProvider:        ProviderGemini,
				MeasurementSystem: MeasurementSystemMetric,
			},
			Privacy: PrivacySettings{
				AllowAnonymousDataCollection: true,
			},
			Sync: SyncSettings{
				AutoSyncEnabled: true,
				SyncFrequency:   "daily",
			},
		},
	}
}
