// Package digest renders deduplicated calendar events into the weekly
// length-bounded summary message.
//
// Rendering is progressive: the week is first built at six events per day,
// and if the message exceeds its budget it is rebuilt from scratch at
// three, then one, and finally hard-truncated. Each re-render is a full
// reconstruction rather than an edit of the previous output.
package digest
