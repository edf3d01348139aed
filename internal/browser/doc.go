/*
Package browser implements the navigation core: tab bookkeeping and page fetching.

# Overview

The package owns two pieces of state shared across the process:

 1. The tab registry — the authoritative list of logical tabs, protected by a
    single reader/writer lock. Everything outside this package only ever sees
    cloned snapshots.
 2. The HTTP client — one shared resty client with a persistent cookie jar,
    a redirect cap of 10 hops, and an optional fixed User-Agent.

FetchPage performs exactly one GET, normalizes the result into a PageResponse,
derives a page title and commits url/last-loaded/title to the owning tab in a
single lock acquisition. Transport and decoding failures leave the registry
untouched.

Callers do not invoke FetchPage directly from UI code; the runtime package
serializes requests onto a background loop and hands results back through
poll-only jobs.
*/
package browser
