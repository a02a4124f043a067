package application_test

import (
	"github.com/felixgeelhaar/studyflow/internal/domain"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

// MockRepo is an in-memory WorkspaceRepository with error injection.
type MockRepo struct {
	Tasks       []schedule.Task
	Plans       []schedule.StudyPlan
	Settings    *domain.Settings
	Commitments schedule.CommitmentSet
	Events      []domain.Event

	LoadError   error
	SaveError   error
	RecordError error
	SaveCalls   int
}

func (m *MockRepo) Initialize() error    { return nil }
func (m *MockRepo) IsInitialized() bool  { return true }

func (m *MockRepo) SaveTasks(tasks []schedule.Task) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Tasks = tasks
	return nil
}

func (m *MockRepo) LoadTasks() ([]schedule.Task, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Tasks, nil
}

func (m *MockRepo) SavePlans(plans []schedule.StudyPlan) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.SaveCalls++
	m.Plans = plans
	return nil
}

func (m *MockRepo) LoadPlans() ([]schedule.StudyPlan, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Plans, nil
}

func (m *MockRepo) SaveSettings(cfg *domain.Settings) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Settings = cfg
	return nil
}

func (m *MockRepo) LoadSettings() (*domain.Settings, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Settings, nil
}

func (m *MockRepo) LoadCommitments() (schedule.CommitmentSet, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Commitments, nil
}

func (m *MockRepo) RecordEvent(event domain.Event) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockRepo) LoadEvents() ([]domain.Event, error) {
	return m.Events, nil
}

// planByDate is a test helper over the stored plans.
func (m *MockRepo) planByDate(date string) *schedule.StudyPlan {
	for i := range m.Plans {
		if m.Plans[i].Date == date {
			return &m.Plans[i]
		}
	}
	return nil
}
