// Package models defines the domain records of the point-of-sale backend.
//
// # Money
//
// All amounts are integer cents (int64). Nothing in this module uses
// floating point for money.
//
// # Nullable fields
//
// Columns that are nullable in the store are pointers here: a nil
// RemainingUses means unlimited uses, a nil EndDate means the entitlement
// never expires.
//
// # Dates and timestamps
//
// Timestamps are Unix seconds. Calendar dates (entitlement start/end,
// check-in day) are local-time "2006-01-02" strings so they compare
// lexically in SQL.
package models

// DateLayout is the layout of calendar date fields.
const DateLayout = "2006-01-02"
