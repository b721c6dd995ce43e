// Package remote provides an HTTP client for a JSON REST service exposing a
// /posts collection.
//
// # Overview
//
// The client is the only place postdeck performs network I/O. It maps the
// four collection operations onto HTTP:
//
//   - GET /posts: ordered list of post records
//   - POST /posts: create from {title, body}; the server assigns the id
//   - PUT /posts/{id}: replace the full record
//   - DELETE /posts/{id}: remove; the response body is ignored
//
// # Client Usage
//
//	client, err := remote.NewClient("https://jsonplaceholder.typicode.com", remote.Options{
//		Timeout: 10 * time.Second,
//		Logger:  logger,
//	})
//	if err != nil {
//		return fmt.Errorf("init posts client: %w", err)
//	}
//	posts, err := client.ListPosts(ctx)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Wait on an optional token-bucket limiter (golang.org/x/time/rate)
//   - Set Accept: application/json and User-Agent: postdeck/0.1
//   - Carry a fresh X-Request-ID (uuid) that is also logged
//   - Time out after Options.Timeout (10 seconds by default)
//
// # Error Handling
//
// Callers only distinguish success from failure. Errors are wrapped with
// context using fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "api PUT /posts/7 returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// The client never retries. Retrying, or not, is the caller's decision.
//
// # URL Construction
//
// The base URL may omit the scheme ("127.0.0.1:8080" becomes
// "http://127.0.0.1:8080") and may carry a path prefix ("http://host/api"
// serves posts from "/api/posts"). Queries and fragments are dropped.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package remote
