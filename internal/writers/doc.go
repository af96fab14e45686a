// Package writers serializes training datasets.
//
// Design:
//   - Writers own all presentation knowledge (TSV layouts, the sqlite
//     container schema).
//   - The scheduler stays orchestration-only and hands writers fully
//     collected or quota-admitted records.
package writers
