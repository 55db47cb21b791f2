// Package controller wires the HTTP endpoints. Every endpoint accepts both
// GET and POST: integrations post JSON while browser clients and webhooks
// often can only issue GETs with query parameters.
package controller

import "github.com/gofiber/fiber/v2"

func route(r fiber.Router, path string, handlers ...fiber.Handler) {
	r.Get(path, handlers...)
	r.Post(path, handlers...)
}
