// Package holdings manages portfolio holdings and their aggregation into
// allocation chart items.
package holdings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthmap/wealthmap/pkg/errors"
)

// Holding is a single position in a portfolio. Monetary amounts use
// decimal arithmetic so aggregation does not accumulate float error.
type Holding struct {
	ID           string          `json:"id" bson:"_id"`
	Symbol       string          `json:"symbol" bson:"symbol"`
	Name         string          `json:"name" bson:"name"`
	Type         AssetType       `json:"type" bson:"type"`
	Shares       decimal.Decimal `json:"shares"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Sector       string          `json:"sector,omitempty" bson:"sector,omitempty"`
	Platform     string          `json:"platform,omitempty" bson:"platform,omitempty"`
	CreatedAt    time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" bson:"updated_at"`
}

// New creates a holding with a generated ID and normalized fields.
// Non-tradable holdings without a price value at cost.
func New(symbol, name, assetType string, shares, avgCost decimal.Decimal) (Holding, error) {
	h := Holding{
		ID:      uuid.NewString(),
		Symbol:  strings.ToUpper(strings.TrimSpace(symbol)),
		Name:    strings.TrimSpace(name),
		Type:    NormalizeType(assetType),
		Shares:  shares,
		AvgCost: avgCost,
	}
	if h.Name == "" {
		h.Name = h.Symbol
	}
	if !h.Type.Tradable() {
		h.CurrentPrice = h.AvgCost
	}
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now

	if err := h.Validate(); err != nil {
		return Holding{}, err
	}
	return h, nil
}

// Validate checks the holding's invariants.
func (h Holding) Validate() error {
	if err := errors.ValidateSymbol(h.Symbol); err != nil {
		return err
	}
	if err := errors.ValidateName(h.Name); err != nil {
		return err
	}
	if !h.Type.IsValid() {
		return errors.New(errors.ErrCodeInvalidAssetType, "invalid asset type: %s", string(h.Type))
	}
	if h.Shares.Sign() <= 0 {
		return errors.New(errors.ErrCodeInvalidAmount, "shares must be positive")
	}
	if h.AvgCost.Sign() <= 0 {
		return errors.New(errors.ErrCodeInvalidAmount, "average cost must be positive")
	}
	if h.CurrentPrice.Sign() < 0 {
		return errors.New(errors.ErrCodeInvalidAmount, "current price must not be negative")
	}
	return nil
}

// MarketValue is shares times current price, falling back to cost basis
// when no price has been recorded.
func (h Holding) MarketValue() decimal.Decimal {
	if h.CurrentPrice.Sign() > 0 {
		return h.Shares.Mul(h.CurrentPrice)
	}
	return h.CostBasis()
}

// CostBasis is shares times average cost.
func (h Holding) CostBasis() decimal.Decimal {
	return h.Shares.Mul(h.AvgCost)
}

// GainLoss is the unrealized gain (or loss, if negative).
func (h Holding) GainLoss() decimal.Decimal {
	return h.MarketValue().Sub(h.CostBasis())
}

// GainLossPercent is the unrealized gain as a percentage of cost basis.
func (h Holding) GainLossPercent() decimal.Decimal {
	basis := h.CostBasis()
	if basis.Sign() == 0 {
		return decimal.Zero
	}
	return h.GainLoss().Div(basis).Mul(decimal.NewFromInt(100))
}

// Update describes a partial update to a holding. Nil fields are left
// unchanged.
type Update struct {
	Name         *string          `json:"name,omitempty"`
	Shares       *decimal.Decimal `json:"shares,omitempty"`
	AvgCost      *decimal.Decimal `json:"avg_cost,omitempty"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	Sector       *string          `json:"sector,omitempty"`
	Platform     *string          `json:"platform,omitempty"`
}

// Apply returns a copy of h with the update applied and validated.
func (u Update) Apply(h Holding) (Holding, error) {
	if u.Name != nil {
		h.Name = strings.TrimSpace(*u.Name)
	}
	if u.Shares != nil {
		h.Shares = *u.Shares
	}
	if u.AvgCost != nil {
		h.AvgCost = *u.AvgCost
		if !h.Type.Tradable() {
			h.CurrentPrice = h.AvgCost
		}
	}
	if u.CurrentPrice != nil {
		h.CurrentPrice = *u.CurrentPrice
	}
	if u.Sector != nil {
		h.Sector = strings.TrimSpace(*u.Sector)
	}
	if u.Platform != nil {
		h.Platform = strings.TrimSpace(*u.Platform)
	}
	h.UpdatedAt = time.Now().UTC()

	if err := h.Validate(); err != nil {
		return Holding{}, err
	}
	return h, nil
}
