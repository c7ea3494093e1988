package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Money is rendered as a JSON number, which is what the admin client expects.
	decimal.MarshalJSONWithoutQuotes = true
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
