// Package valutatrade implements the ledger and rate-aggregation engine of
// the ValutaTrade hub: registered users hold balances in several currencies
// and convert between them at externally sourced exchange rates.
//
// The core functionalities include:
//   - Rate Aggregation: polling independent external price providers,
//     normalizing their payloads into canonical FROM_TO quotes, and
//     persisting both a current-best snapshot and an append-only history.
//     One failing provider degrades coverage of a run, never its
//     availability.
//   - Trading Ledger: pricing buy/sell conversions against the snapshot
//     over per-user multi-currency wallets, enforcing non-negative balances
//     and funds sufficiency, and persisting every mutation atomically.
//   - Data Persistence: crash-safe JSON collections written with a
//     temp-file-then-rename protocol; corrupt files degrade to empty
//     defaults rather than failing loads.
//
// This package serves as the foundational logic for the `vth` command-line
// tool, which consumes the ledger's public operations and the rate store's
// read contract.
package valutatrade
