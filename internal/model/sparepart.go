package model

import "time"

// Part type vocabulary. ScreenQuality is only meaningful for PartTypeScreen.
const (
	PartTypeScreen       = "Screen"
	PartTypeBattery      = "Battery"
	PartTypeMicrophone   = "Microphone"
	PartTypeSpeaker      = "Speaker"
	PartTypeCamera       = "Camera"
	PartTypeChargingPort = "Charging Port"
	PartTypeOther        = "Other"
)

// PartTypes lists the accepted values for SparePart.PartType.
var PartTypes = []string{
	PartTypeScreen,
	PartTypeBattery,
	PartTypeMicrophone,
	PartTypeSpeaker,
	PartTypeCamera,
	PartTypeChargingPort,
	PartTypeOther,
}

// ScreenQualities lists the accepted values for SparePart.ScreenQuality.
var ScreenQualities = []string{"OLED", "AMOLED", "LCD", "TFT", "IPS"}

// SparePart is a stocked inventory item tied to one brand and model.
// Prices satisfy purchase_price > 0, selling_price > purchase_price;
// quantity never goes below zero.  LowStockAlert is a threshold, not
// a hard limit.  Corresponds to a row in the `spare_parts` table.
type SparePart struct {
	ID            string    `json:"id"`                       // spare_parts.id
	Name          string    `json:"name"`                     // spare_parts.name
	PartType      string    `json:"part_type"`                // spare_parts.part_type
	ScreenQuality *string   `json:"screen_quality,omitempty"` // spare_parts.screen_quality (nullable)
	BrandID       string    `json:"brand_id"`                 // spare_parts.brand_id
	ModelID       string    `json:"model_id"`                 // spare_parts.model_id
	Quantity      int       `json:"quantity"`                 // spare_parts.quantity
	PurchasePrice float64   `json:"purchase_price"`           // spare_parts.purchase_price
	SellingPrice  float64   `json:"selling_price"`            // spare_parts.selling_price
	LowStockAlert int       `json:"low_stock_alert"`          // spare_parts.low_stock_alert
	CreatedAt     time.Time `json:"created_at"`               // spare_parts.created_at
	UpdatedAt     time.Time `json:"updated_at"`               // spare_parts.updated_at
	Brand         *Brand    `json:"brand,omitempty"`          // joined brand snapshot
	Model         *Model    `json:"model,omitempty"`          // joined model snapshot
}

// IsLowStock reports whether the part is at or below its alert
// threshold.  The boundary is inclusive: quantity == low_stock_alert
// counts as low stock.
func (p *SparePart) IsLowStock() bool {
	return p.Quantity <= p.LowStockAlert
}

// SparePartPatch carries a partial update to a spare part.  Nil
// fields are left untouched.
type SparePartPatch struct {
	Name          *string  `json:"name,omitempty"`
	PartType      *string  `json:"part_type,omitempty"`
	ScreenQuality *string  `json:"screen_quality,omitempty"`
	BrandID       *string  `json:"brand_id,omitempty"`
	ModelID       *string  `json:"model_id,omitempty"`
	Quantity      *int     `json:"quantity,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	SellingPrice  *float64 `json:"selling_price,omitempty"`
	LowStockAlert *int     `json:"low_stock_alert,omitempty"`
}
