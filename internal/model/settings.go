package model

import "time"

// WorkshopSettings is the single-row workshop profile shown on
// receipts and in the header.  Exactly one row exists; updates
// mutate it in place and never create a second row.  Corresponds
// to the `workshop_settings` table.
type WorkshopSettings struct {
	ID              string    `json:"id"`                // workshop_settings.id
	Name            string    `json:"name"`              // workshop_settings.name
	Address         string    `json:"address"`           // workshop_settings.address
	Phone           string    `json:"phone"`             // workshop_settings.phone
	ThankYouMessage string    `json:"thank_you_message"` // workshop_settings.thank_you_message
	CreatedAt       time.Time `json:"created_at"`        // workshop_settings.created_at
	UpdatedAt       time.Time `json:"updated_at"`        // workshop_settings.updated_at
}

// WorkshopSettingsPatch carries a partial settings update.  Nil
// fields are left untouched.
type WorkshopSettingsPatch struct {
	Name            *string `json:"name,omitempty"`
	Address         *string `json:"address,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ThankYouMessage *string `json:"thank_you_message,omitempty"`
}
