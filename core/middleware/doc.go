// Package middleware groups the fiber middleware that runs before every
// feature handler.
//
// rayid tags each request with an X-Ray-ID used by the request log and
// logger.WithRayID. auth turns the Authorization header into an owner id;
// handlers never read the header themselves and pass auth.OwnerID(c) to
// their services instead, so ownership checks live in one place per
// operation.
package middleware
