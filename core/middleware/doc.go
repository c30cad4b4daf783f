// Package middleware groups the Fiber middleware used by the HTTP server.
//
//   - auth: rejects requests without the configured API key (X-API-Key header
//     or Bearer token). Path prefixes such as /swagger can be exempted.
//   - rayid: tags every request with a ray id, reusing an incoming X-Ray-ID,
//     and echoes it in the response so logs and clients can be correlated.
//
// Register rayid first so every later log line carries the id.
package middleware
