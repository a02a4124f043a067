package domain

import (
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

// WorkspaceRepository handles persistence of studyflow artifacts in the
// .studyflow/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveTasks(tasks []schedule.Task) error
	LoadTasks() ([]schedule.Task, error)
	SavePlans(plans []schedule.StudyPlan) error
	LoadPlans() ([]schedule.StudyPlan, error)
	SaveSettings(cfg *Settings) error
	LoadSettings() (*Settings, error)
	LoadCommitments() (schedule.CommitmentSet, error)
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}

// Settings is the serialized representation of settings.yaml.
type Settings struct {
	DailyStudyHours    float64 `yaml:"daily_study_hours"`
	DayStart           string  `yaml:"day_start"` // "15:04"
	DayEnd             string  `yaml:"day_end"`
	RedistributionMode string  `yaml:"redistribution_mode"` // "enhanced" or "legacy"
	HorizonDays        int     `yaml:"horizon_days"`
}

// DefaultSettings returns the configuration used when settings.yaml is
// absent.
func DefaultSettings() *Settings {
	return &Settings{
		DailyStudyHours:    4,
		DayStart:           "09:00",
		DayEnd:             "21:00",
		RedistributionMode: "enhanced",
		HorizonDays:        30,
	}
}
