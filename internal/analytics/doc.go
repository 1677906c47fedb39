// Package analytics derives productivity metrics from a task snapshot.
//
// Every function is pure: it reads only its arguments and never consults the
// wall clock. The caller passes "now", and calendar days are evaluated in
// now.Location().
package analytics
