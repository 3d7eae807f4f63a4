package prayer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// RulesKey is the store key holding the scheduling rules.
const RulesKey = "scheduling_rules"

// ErrRuleNotFound is returned when no rule has the requested id.
var ErrRuleNotFound = errors.New("scheduling rule not found")

// ConditionType says when a rule applies relative to a prayer.
type ConditionType string

const (
	ConditionBeforePrayer ConditionType = "before_prayer"
	ConditionAfterPrayer  ConditionType = "after_prayer"
	ConditionDuringPrayer ConditionType = "during_prayer"
)

// ActionType says what to do with a meeting that matches a rule.
type ActionType string

const (
	ActionBlock              ActionType = "block"
	ActionWarn               ActionType = "warn"
	ActionSuggestAlternative ActionType = "suggest_alternative"
)

// AllPrayers targets every prayer in a rule condition.
const AllPrayers = "all"

// Condition is the trigger of a rule.
type Condition struct {
	Type          ConditionType `json:"type"`
	Prayer        string        `json:"prayer"` // a prayer name or "all"
	BufferMinutes int           `json:"bufferMinutes"`
}

// Action is the effect of a rule.
type Action struct {
	Type            ActionType `json:"type"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
}

// Rule is a user-defined scheduling rule.
type Rule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	Condition Condition `json:"condition"`
	Action    Action    `json:"action"`
	Priority  int       `json:"priority"`
}

// RulePatch is a partial rule update; nil fields are left unchanged.
type RulePatch struct {
	Name      *string    `json:"name,omitempty"`
	Enabled   *bool      `json:"enabled,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
	Action    *Action    `json:"action,omitempty"`
	Priority  *int       `json:"priority,omitempty"`
}

// Seeded rule ids are fixed so a rule listed before anything is persisted
// can still be addressed by a later process.
var (
	DefaultPrayerBufferRuleID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("prayer-planner:rule:prayer-buffer")).String()
	DefaultAfterDhuhrRuleID   = uuid.NewSHA1(uuid.NameSpaceURL, []byte("prayer-planner:rule:after-dhuhr")).String()
)

// DefaultRules returns the two rules every user starts with.
func DefaultRules() []Rule {
	block := 15
	return []Rule{
		{
			ID:        DefaultPrayerBufferRuleID,
			Name:      "Keep 15 minutes clear before every prayer",
			Enabled:   true,
			Condition: Condition{Type: ConditionBeforePrayer, Prayer: AllPrayers, BufferMinutes: 15},
			Action:    Action{Type: ActionBlock, DurationMinutes: &block},
			Priority:  1,
		},
		{
			ID:        DefaultAfterDhuhrRuleID,
			Name:      "Suggest another time for meetings right after Dhuhr",
			Enabled:   true,
			Condition: Condition{Type: ConditionAfterPrayer, Prayer: Dhuhr, BufferMinutes: 30},
			Action:    Action{Type: ActionSuggestAlternative},
			Priority:  2,
		},
	}
}

// normalize clamps the rule into a valid shape.
func (r Rule) normalize() Rule {
	switch r.Condition.Type {
	case ConditionBeforePrayer, ConditionAfterPrayer, ConditionDuringPrayer:
	default:
		r.Condition.Type = ConditionBeforePrayer
	}
	r.Condition.Prayer = strings.ToLower(strings.TrimSpace(r.Condition.Prayer))
	if r.Condition.Prayer != AllPrayers && !IsValidName(r.Condition.Prayer) {
		r.Condition.Prayer = AllPrayers
	}
	r.Condition.BufferMinutes = clampInt(r.Condition.BufferMinutes, 0, 240)

	switch r.Action.Type {
	case ActionBlock, ActionWarn, ActionSuggestAlternative:
	default:
		r.Action.Type = ActionWarn
	}
	if r.Action.DurationMinutes != nil {
		d := clampInt(*r.Action.DurationMinutes, 0, 480)
		r.Action.DurationMinutes = &d
	}
	if r.Priority < 1 {
		r.Priority = 1
	}
	if strings.TrimSpace(r.Name) == "" {
		r.Name = fmt.Sprintf("%s %s", r.Condition.Type, r.Condition.Prayer)
	}
	return r
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		if r.Action.DurationMinutes != nil {
			d := *r.Action.DurationMinutes
			r.Action.DurationMinutes = &d
		}
		out[i] = r
	}
	return out
}

// Rules returns the scheduling rules ordered by priority.
func (s *Service) Rules() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := cloneRules(s.rules)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })
	return rules
}

// AddRule stores a new rule with a fresh id and returns it.
func (s *Service) AddRule(ctx context.Context, r Rule) (Rule, error) {
	r.ID = uuid.NewString()
	r = r.normalize()

	err := s.mutateRules(ctx, func(rules []Rule) ([]Rule, error) {
		return append(rules, r), nil
	})
	if err != nil {
		return Rule{}, err
	}
	return cloneRules([]Rule{r})[0], nil
}

// UpdateRule merges patch into the rule with the given id.
func (s *Service) UpdateRule(ctx context.Context, id string, patch RulePatch) (Rule, error) {
	var updated Rule
	err := s.mutateRules(ctx, func(rules []Rule) ([]Rule, error) {
		i := indexOfRule(rules, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
		}
		r := rules[i]
		if patch.Name != nil {
			r.Name = *patch.Name
		}
		if patch.Enabled != nil {
			r.Enabled = *patch.Enabled
		}
		if patch.Condition != nil {
			r.Condition = *patch.Condition
		}
		if patch.Action != nil {
			r.Action = *patch.Action
		}
		if patch.Priority != nil {
			r.Priority = *patch.Priority
		}
		rules[i] = r.normalize()
		updated = rules[i]
		return rules, nil
	})
	if err != nil {
		return Rule{}, err
	}
	return cloneRules([]Rule{updated})[0], nil
}

// DeleteRule removes the rule with the given id.
func (s *Service) DeleteRule(ctx context.Context, id string) error {
	return s.mutateRules(ctx, func(rules []Rule) ([]Rule, error) {
		i := indexOfRule(rules, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
		}
		return append(rules[:i], rules[i+1:]...), nil
	})
}

// ToggleRule flips the enabled flag of the rule with the given id.
func (s *Service) ToggleRule(ctx context.Context, id string) (Rule, error) {
	var toggled Rule
	err := s.mutateRules(ctx, func(rules []Rule) ([]Rule, error) {
		i := indexOfRule(rules, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
		}
		rules[i].Enabled = !rules[i].Enabled
		toggled = rules[i]
		return rules, nil
	})
	if err != nil {
		return Rule{}, err
	}
	return cloneRules([]Rule{toggled})[0], nil
}

// mutateRules applies fn to a copy of the rules and persists the result. The
// in-memory rules only change once the write succeeds.
func (s *Service) mutateRules(ctx context.Context, fn func([]Rule) ([]Rule, error)) error {
	unlock := s.locker.Lock(RulesKey)
	defer unlock()

	s.mu.RLock()
	rules := cloneRules(s.rules)
	s.mu.RUnlock()

	rules, err := fn(rules)
	if err != nil {
		return err
	}
	if err := store.SetJSON(ctx, s.store, RulesKey, rules); err != nil {
		return fmt.Errorf("failed to save scheduling rules: %w", err)
	}

	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return nil
}

func indexOfRule(rules []Rule, id string) int {
	for i := range rules {
		if rules[i].ID == id {
			return i
		}
	}
	return -1
}
