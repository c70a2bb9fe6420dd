package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tourdesk/models"
	"tourdesk/supplier"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotConfig is a slot snapshot plus its derived flags, returned from every
// configurator operation so the caller always sees where the slot stands.
type SlotConfig struct {
	Slot            models.Slot         `json:"slot"`
	Phase           models.SlotPhase    `json:"phase"`
	OptionsComplete bool                `json:"optionsComplete"`
	IsValid         bool                `json:"isValid"`
	NextActions     []models.NextAction `json:"nextActions"`
}

// AvailabilityService drives a slot from selected to valid-for-booking.
type AvailabilityService interface {
	SearchSlots(ctx context.Context, experienceID, from, to string) ([]models.Slot, error)
	GetSlotConfig(ctx context.Context, slotID string) (*SlotConfig, error)
	AnswerOptions(ctx context.Context, slotID string, answers map[string]string) (*SlotConfig, error)
	GetPricing(ctx context.Context, slotID string) (*SlotConfig, error)
	AssignPricing(ctx context.Context, slotID string, units map[string]int) (*SlotConfig, error)
	ConfigureSlot(ctx context.Context, slotID string, answers map[string]string, units map[string]int) (*SlotConfig, error)
}

// DefaultAvailabilityService implements AvailabilityService against the
// supplier client. Search results are cached briefly in Redis; slot state
// reads always go to the supplier.
type DefaultAvailabilityService struct {
	Supplier supplier.Client
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

func snapshot(slot *models.Slot) *SlotConfig {
	phase := SlotPhaseOf(slot)
	return &SlotConfig{
		Slot:            *slot,
		Phase:           phase,
		OptionsComplete: OptionsComplete(slot),
		IsValid:         SlotIsValid(slot),
		NextActions:     NextForSlot(phase),
	}
}

// SearchSlots returns all slots for an experience within a date range. Pure
// read, no state transition.
func (s *DefaultAvailabilityService) SearchSlots(ctx context.Context, experienceID, from, to string) ([]models.Slot, error) {
	key := fmt.Sprintf("slots:%s:%s:%s", experienceID, from, to)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var slots []models.Slot
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := s.Supplier.SearchSlots(ctx, experienceID, from, to)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			ttl := s.CacheTTL
			if ttl <= 0 {
				ttl = time.Minute
			}
			if err := s.Cache.Set(ctx, key, data, ttl).Err(); err != nil {
				s.Logger.Warn("failed to cache slot search", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return slots, nil
}

// GetSlotConfig fetches the slot's full option and pricing detail with the
// derived optionsComplete/isValid flags. Side-effect-free.
func (s *DefaultAvailabilityService) GetSlotConfig(ctx context.Context, slotID string) (*SlotConfig, error) {
	slot, err := s.Supplier.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	return snapshot(slot), nil
}

// AnswerOptions submits option answers. Idempotent per option id; later
// answers overwrite earlier ones.
func (s *DefaultAvailabilityService) AnswerOptions(ctx context.Context, slotID string, answers map[string]string) (*SlotConfig, error) {
	slot, err := s.Supplier.SetSlotOptions(ctx, slotID, answers)
	if err != nil {
		return nil, err
	}
	cfg := snapshot(slot)
	s.Logger.Info("slot options submitted",
		zap.String("slotID", slotID),
		zap.Int("answers", len(answers)),
		zap.Bool("optionsComplete", cfg.OptionsComplete))
	return cfg, nil
}

// GetPricing returns the slot's pricing categories. Only meaningful once
// options are complete; before that the categories may be absent or
// incomplete, so the result carries optionsComplete for the caller to check.
func (s *DefaultAvailabilityService) GetPricing(ctx context.Context, slotID string) (*SlotConfig, error) {
	return s.GetSlotConfig(ctx, slotID)
}

// AssignPricing submits per-category unit counts and returns the updated
// validity. Bound violations are not raised as errors; the slot simply
// stays INVALID and the caller inspects min/max against assigned units.
func (s *DefaultAvailabilityService) AssignPricing(ctx context.Context, slotID string, units map[string]int) (*SlotConfig, error) {
	slot, err := s.Supplier.SetSlotPricing(ctx, slotID, units)
	if err != nil {
		return nil, err
	}
	cfg := snapshot(slot)
	s.Logger.Info("slot pricing assigned",
		zap.String("slotID", slotID),
		zap.Bool("isValid", cfg.IsValid))
	return cfg, nil
}

// ConfigureSlot collapses option answering and pricing assignment into one
// call. Options are submitted first; pricing is only attempted once they
// are complete, preserving the guard ordering of the step-by-step protocol.
func (s *DefaultAvailabilityService) ConfigureSlot(ctx context.Context, slotID string, answers map[string]string, units map[string]int) (*SlotConfig, error) {
	cfg, err := s.GetSlotConfig(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if len(answers) > 0 {
		cfg, err = s.AnswerOptions(ctx, slotID, answers)
		if err != nil {
			return nil, err
		}
	}
	if !cfg.OptionsComplete {
		// Stop here: pricing assignment is meaningless until every
		// required option is answered.
		return cfg, nil
	}
	if len(units) > 0 {
		cfg, err = s.AssignPricing(ctx, slotID, units)
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
