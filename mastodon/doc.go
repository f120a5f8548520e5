/*
Minimal client for the handful of Mastodon REST API endpoints needed to investigate a single account and file moderation reports.

[APIClient] wraps an [http.Client] for reads (typically a retrying client from [github.com/fediwatch/trollhunter/pkg/robusthttp]) and a separate single-shot client for writes, so a moderation report is never submitted twice by a transport-level retry. Every request carries a User-Agent and an "Accept: application/json" header. Requests can optionally be gated by a [rate.Limiter].

Failures are returned as distinct error types, so calling code can use [errors.As] to render a precise message:

- [TransportError]: connection failure or timeout
- [EmptyResponseError]: the server returned a success status with no body
- [MalformedResponseError]: the body was not valid JSON for the expected shape
- [NotFoundError]: account lookup found nothing usable
- [APIError]: the server rejected the request (non-2xx with an error body), eg an invalid token

This package is not a general Mastodon client: it covers account lookup, account statuses, status context, and reports.
*/
package mastodon
