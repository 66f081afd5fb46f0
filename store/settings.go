package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"knowledgebase/config"
	"knowledgebase/types"
)

// SettingsAction names a settings mutation. Each action has fixed
// pre/post semantics rather than free-form field updates.
type SettingsAction string

const (
	// ActionSave sets the current prompt only.
	ActionSave SettingsAction = "save"
	// ActionSaveAsDefault sets the current prompt and the owner's
	// reset-to-default target.
	ActionSaveAsDefault SettingsAction = "save_as_default"
	// ActionResetToDefault replaces the current prompt with the owner's
	// default (or the system default when none was ever saved).
	ActionResetToDefault SettingsAction = "reset_to_default"
)

// ErrPromptRequired is returned by save actions with an empty prompt.
var ErrPromptRequired = errors.New("summary prompt is required")

// ErrUnknownAction is returned for an unrecognized settings action.
var ErrUnknownAction = errors.New("unknown settings action")

func settingsKey(owner string) string        { return "kb:" + owner + ":settings" }
func settingsDefaultKey(owner string) string { return "kb:" + owner + ":settings:default" }

type storedSettings struct {
	SummaryPrompt string    `json:"summary_prompt"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetSettings returns the owner's settings, lazily falling back to the
// system default prompt when nothing has been saved yet.
func (s *Store) GetSettings(ctx context.Context, owner string) (*types.Settings, error) {
	current, err := s.loadCurrent(ctx, owner)
	if err != nil {
		return nil, err
	}
	defaultPrompt, err := s.loadDefaultPrompt(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := &types.Settings{
		OwnerID:       owner,
		SummaryPrompt: config.DefaultSummaryPrompt,
		DefaultPrompt: defaultPrompt,
	}
	if current != nil {
		out.SummaryPrompt = current.SummaryPrompt
		out.UpdatedAt = current.UpdatedAt
	}
	return out, nil
}

// CurrentPrompt returns the prompt the summarizer should use for this
// owner right now.
func (s *Store) CurrentPrompt(ctx context.Context, owner string) (string, error) {
	settings, err := s.GetSettings(ctx, owner)
	if err != nil {
		return "", err
	}
	return settings.SummaryPrompt, nil
}

// ApplySettings executes one tagged settings action and returns the
// post-state.
func (s *Store) ApplySettings(ctx context.Context, owner string, action SettingsAction, prompt string) (*types.Settings, error) {
	switch action {
	case ActionSave:
		if strings.TrimSpace(prompt) == "" {
			return nil, ErrPromptRequired
		}
		if err := s.saveCurrent(ctx, owner, prompt); err != nil {
			return nil, err
		}

	case ActionSaveAsDefault:
		if strings.TrimSpace(prompt) == "" {
			return nil, ErrPromptRequired
		}
		if err := s.saveCurrent(ctx, owner, prompt); err != nil {
			return nil, err
		}
		if err := s.client.Set(ctx, settingsDefaultKey(owner), prompt, 0).Err(); err != nil {
			return nil, fmt.Errorf("failed to store default prompt: %w", err)
		}

	case ActionResetToDefault:
		defaultPrompt, err := s.loadDefaultPrompt(ctx, owner)
		if err != nil {
			return nil, err
		}
		if err := s.saveCurrent(ctx, owner, defaultPrompt); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	return s.GetSettings(ctx, owner)
}

func (s *Store) loadCurrent(ctx context.Context, owner string) (*storedSettings, error) {
	data, err := s.client.Get(ctx, settingsKey(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var cur storedSettings
	if err := json.Unmarshal([]byte(data), &cur); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &cur, nil
}

func (s *Store) loadDefaultPrompt(ctx context.Context, owner string) (string, error) {
	prompt, err := s.client.Get(ctx, settingsDefaultKey(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return config.DefaultSummaryPrompt, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load default prompt: %w", err)
	}
	return prompt, nil
}

func (s *Store) saveCurrent(ctx context.Context, owner, prompt string) error {
	data, err := json.Marshal(storedSettings{
		SummaryPrompt: prompt,
		UpdatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.client.Set(ctx, settingsKey(owner), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}
	return nil
}
