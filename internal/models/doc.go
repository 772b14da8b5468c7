// Package models defines the core domain models for smart-split.
//
// # Models
//
//   - Participant: a group member identified by an opaque ID plus display name
//   - SplitShare: a (participant, amount) pair used for both paying and owing
//   - Expense: a shared expense with payer shares and debtor shares
//   - Transaction: one settlement payment produced by the calculator
//   - Group: a reusable participant list that owns expenses
//   - Settlement: a recorded (executed) payment between members
//   - User: a registered account used for authentication only
//
// # Design Principles
//
//  1. Participants are not user accounts: a group can contain people who never
//     log in. Users exist only so the API can require authentication.
//  2. Avoid circular references: models reference each other by ID strings.
//  3. Amounts are float64 in a single implicit currency unit; all rounding
//     rules live in the calculator package, not here.
package models
