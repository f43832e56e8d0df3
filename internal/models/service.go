package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Service categories offered by partners.
const (
	CategoryWellness  = "wellness"
	CategorySport     = "sport"
	CategoryCulture   = "culture"
	CategoryEducation = "education"
	CategoryTravel    = "travel"
)

// Service is a catalog entry a partner offers for a fixed amount of points.
type Service struct {
	ID              string          `gorm:"primaryKey;size:64" json:"id"`
	PartnerID       string          `gorm:"not null;index;size:64" json:"partner_id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	Category        string          `gorm:"index" json:"category"`
	PointsRequired  int64           `gorm:"not null" json:"points_required"`
	OriginalPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"original_price"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"discounted_price"`
	Metadata        datatypes.JSON  `json:"metadata,omitempty"`
	Active          bool            `gorm:"not null" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Savings is the difference between the original and the discounted price.
func (s *Service) Savings() decimal.Decimal {
	if s.DiscountedPrice.IsZero() {
		return decimal.Zero
	}
	return s.OriginalPrice.Sub(s.DiscountedPrice)
}
