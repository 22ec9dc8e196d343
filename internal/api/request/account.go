package request

// CreateAccountRequest represents the request body for creating an account
type CreateAccountRequest struct {
	Name string `json:"name"`
}

// RenameAccountRequest represents the request body for renaming an account.
// The rename cascades to every position referencing the old name.
type RenameAccountRequest struct {
	Name string `json:"name"`
}

// VendorTokenRequest represents the request body for storing the market data
// vendor API token.
type VendorTokenRequest struct {
	Token string `json:"token"`
}
