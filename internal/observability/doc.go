// Package observability records store events to a JSON Lines log, derives
// activity counts from that log, evaluates due-date reminders over a task
// snapshot, and delivers reminders to Slack.
package observability
