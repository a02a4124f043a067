package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/studyflow/internal/domain"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const StudyflowDir = ".studyflow"
const TasksFile = "tasks.json"
const PlansFile = "plans.json"
const SettingsFile = "settings.yaml"
const CommitmentsFile = "commitments.yaml"
const EventsFile = "events.jsonl"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// ResolvePath ensures the path is within the .studyflow directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, StudyflowDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, StudyflowDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .studyflow directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, StudyflowDir))
	return err == nil
}

func (r *FilesystemRepository) SaveTasks(tasks []schedule.Task) error {
	path, err := r.ResolvePath(TasksFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadTasks() ([]schedule.Task, error) {
	retryer := retry.New[[]schedule.Task](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]schedule.Task, error) {
		path, err := r.ResolvePath(TasksFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read tasks file: %w", err)
		}

		if err := validateTasksDocument(data); err != nil {
			return nil, err
		}

		var tasks []schedule.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
		}

		return tasks, nil
	})
}

// SavePlans persists the whole plan set, assigning IDs to plans created in
// memory without one.
func (r *FilesystemRepository) SavePlans(plans []schedule.StudyPlan) error {
	path, err := r.ResolvePath(PlansFile)
	if err != nil {
		return err
	}

	for i := range plans {
		if plans[i].ID == "" {
			plans[i].ID = uuid.New().String()
		}
	}

	data, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plans: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadPlans() ([]schedule.StudyPlan, error) {
	retryer := retry.New[[]schedule.StudyPlan](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]schedule.StudyPlan, error) {
		path, err := r.ResolvePath(PlansFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read plans file: %w", err)
		}

		if err := validatePlansDocument(data); err != nil {
			return nil, err
		}

		var plans []schedule.StudyPlan
		if err := json.Unmarshal(data, &plans); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plans: %w", err)
		}

		return plans, nil
	})
}

func (r *FilesystemRepository) SaveSettings(cfg *domain.Settings) error {
	if cfg == nil {
		return fmt.Errorf("settings are nil")
	}

	path, err := r.ResolvePath(SettingsFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadSettings() (*domain.Settings, error) {
	path, err := r.ResolvePath(SettingsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var cfg domain.Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &cfg, nil
}

func (r *FilesystemRepository) LoadCommitments() (schedule.CommitmentSet, error) {
	path, err := r.ResolvePath(CommitmentsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read commitments: %w", err)
	}

	var cs schedule.CommitmentSet
	if err := yaml.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commitments: %w", err)
	}

	return cs, nil
}
