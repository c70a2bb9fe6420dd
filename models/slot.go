package models

// Money is an amount in minor units with its currency code.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Slot is a unit of purchasable availability, owned by the supplier. We hold
// only the identifier plus the last-fetched snapshot.
type Slot struct {
	ID           string            `json:"id"`
	ExperienceID string            `json:"experienceId"`
	Date         string            `json:"date"`
	StartTime    string            `json:"startTime,omitempty"`
	SoldOut      bool              `json:"soldOut"`
	GuidePrice   Money             `json:"guidePrice"`
	Options      []SlotOption      `json:"options,omitempty"`
	Categories   []PricingCategory `json:"pricingCategories,omitempty"`
}

// SlotOption is a configurable attribute of a slot (time window, language,
// variant). Required options must carry a non-empty answer before pricing
// becomes meaningful.
type SlotOption struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	DataType string   `json:"dataType"`
	Required bool     `json:"required"`
	Answer   string   `json:"answer,omitempty"`
	Choices  []string `json:"choices,omitempty"`
}

// PricingCategory is a participant class (Adult, Child) with per-unit price
// and quantity bounds. MaxUnits of zero means unbounded.
type PricingCategory struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	UnitPrice  Money  `json:"unitPrice"`
	Units      int    `json:"units"`
	MinUnits   int    `json:"minUnits"`
	MaxUnits   int    `json:"maxUnits"`
	TotalPrice Money  `json:"totalPrice"`
}

// SlotPhase is derived from a slot snapshot, never stored.
type SlotPhase string

const (
	SlotSelected          SlotPhase = "SELECTED"
	SlotOptionsIncomplete SlotPhase = "OPTIONS_INCOMPLETE"
	SlotOptionsComplete   SlotPhase = "OPTIONS_COMPLETE"
	SlotPricingUnset      SlotPhase = "PRICING_UNSET"
	SlotInvalid           SlotPhase = "INVALID"
	SlotValid             SlotPhase = "VALID"
)
