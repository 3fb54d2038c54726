// Package cli is the interactive HopeKeeper terminal client.
//
// App wires the configuration, the local SQLite database, the API client,
// the entity store, the offline queue and the device settings. Root runs a
// line-based REPL; every line is dispatched through a cobra command tree
// built by newRootCmd.
//
// Two goroutines run next to the REPL: StartOnlineStatusWatcher pings the
// server and, on the way back online, reconnects an offline session, drains
// the offline queue and reloads the cache; StartReminder posts the daily
// check-in notification.
//
// While offline, new mood entries, thought records, ERP sessions,
// meditation, sleep and crisis logs are queued under the signed-in user and
// sent on that user's next sync.
package cli
