package request

// CreatePositionRequest represents the request body for creating a position.
// The entry fields (amount, shares, unitCost, gain) are raw form text; the
// server runs them through the entry calculator, so partially filled forms
// behave exactly like the interactive editor. Only fields the user actually
// touched need to be present.
type CreatePositionRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Platform   string  `json:"platform"`
	CurrentNav float64 `json:"currentNav"`

	Amount   *string `json:"amount,omitempty"`
	Shares   *string `json:"shares,omitempty"`
	UnitCost *string `json:"unitCost,omitempty"`
	Gain     *string `json:"gain,omitempty"`
}

// UpdatePositionRequest represents the request body for editing a position.
// The stored (shares, cost, nav) triple seeds the entry form; provided raw
// fields are applied on top as serialized edits.
type UpdatePositionRequest struct {
	Platform *string `json:"platform,omitempty"`

	Amount   *string `json:"amount,omitempty"`
	Shares   *string `json:"shares,omitempty"`
	UnitCost *string `json:"unitCost,omitempty"`
	Gain     *string `json:"gain,omitempty"`
}

// EntryPreviewRequest represents one reactive edit applied to the current
// form state. EditedField names the single field being changed; the other
// raw values are the form's current contents.
type EntryPreviewRequest struct {
	CurrentNav float64 `json:"currentNav"`
	Amount     string  `json:"amount"`
	Shares     string  `json:"shares"`
	UnitCost   string  `json:"unitCost"`
	Gain       string  `json:"gain"`

	EditedField string `json:"editedField"` // amount | shares | unitCost | gain
	EditedValue string `json:"editedValue"`
}
