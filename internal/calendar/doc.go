// Package calendar renders the normalized schedule as an iCalendar feed.
package calendar
