package handler

// Generic HTTP error messages
const (
	ErrMsgInvalidJSON         = "Invalid JSON in request body"
	ErrMsgInvalidPlotID       = "Invalid plot id"
	ErrMsgMissingActionID     = "Missing action_id"
	ErrMsgMissingCropID       = "Missing crop_id"
	ErrMsgMissingItem         = "Missing item"
	ErrMsgInvalidQuantity     = "Quantity must be positive"
	ErrMsgInvalidSpecies      = "Unknown species"
	ErrMsgInvalidSpeed        = "Invalid speed"
	ErrMsgInvalidAmount       = "Amount must be positive"
	ErrMsgSaveFailed          = "Failed to save the farm"
	ErrMsgLoadFailed          = "Failed to load the farm"
	ErrMsgValidationFailed    = "Request validation failed"
	ErrMsgInternalServerError = "Internal server error"
)
