// Package exchange moves task collections in and out of the manager:
// JSON backups, CSV and XLSX exports, and merging JSON backups back in.
package exchange
