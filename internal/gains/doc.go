// Package gains computes realized capital gains and losses from buy and sell
// trades using first-in-first-out lot matching.
//
// A sell is matched against the oldest open purchase lots of the same security.
// Each matched fragment contributes either a gain or a loss. Gains on shares
// held for more than 365 days are halved (the long-term discount); losses are
// never discounted.
//
// Purchase fees are prorated over the lot's original quantity and sale fees over
// the sell trade's full quantity, each rounded to cents before use. All money
// arithmetic is exact decimal.
//
// Ledgers live only for the duration of one Calculate call, so repeated calls
// never share state.
package gains
