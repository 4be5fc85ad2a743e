package commands

import "errors"

// ReloadCatalogCommand re-runs the catalog loader and swaps in the new
// catalog. Admin-only.
type ReloadCatalogCommand struct {
	RequestedBy string `json:"requested_by"`
}

// Validate validates the command
func (c ReloadCatalogCommand) Validate() error {
	if c.RequestedBy == "" {
		return errors.New("requestedBy is required")
	}
	return nil
}
