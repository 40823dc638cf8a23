// Package fetch retrieves the schedule page and linked documents.
//
// HTTP is the default fetcher: a plain GET with a User-Agent, paced by a
// token-bucket limiter and retried with exponential backoff. Browser renders
// the page in headless Chrome for sites that hydrate the schedule with
// JavaScript.
package fetch
