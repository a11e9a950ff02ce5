// Package httpapi exposes the firflight services as a JSON API under
// /api/v1, routed with chi.
package httpapi
