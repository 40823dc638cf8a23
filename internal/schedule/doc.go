// Package schedule provides the record types and normalization rules for the
// Nebraska volleyball schedule.
//
// RawEvent is the loosely-typed record written by the extractor; ScheduleRow is
// the canonical, UI-ready row written by the normalizer. Normalize resolves
// dates against the season year, infers home/away, cleans arena names into
// stable slugs and orders the rows by date and time. Rows that cannot be placed
// on the calendar are dropped, never emitted with a guessed date.
package schedule
