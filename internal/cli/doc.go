// Package cli is the interactive shell around the diary store.
//
// It loads nothing itself: NewApp receives the parsed configuration, builds
// the logger and the store, and Run prompts for the password once before
// entering a read–eval–print loop. The prompt shows the database file name
// and whether it is unlocked:
//
//	diary (diary.db, unlocked)> search walk
//	2024-01-15
//
// Commands:
//
//	unlock                 enter the password (again)
//	list | l               all dates, newest first
//	search | find <text>   dates whose date or text contains <text>
//	show [date]            print one entry
//	write [date]           create or replace an entry
//	delete [date]          remove an entry after confirmation
//	help                   list commands
//	exit | quit            leave
//
// Dates are YYYYMMDD, YYYY-MM-DD, "today" or "yesterday"; a missing date
// means today.
package cli
