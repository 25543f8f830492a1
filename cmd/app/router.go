package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	// user service
	router.HandlerFunc(http.MethodPost, "/api/v1/users/login", app.loginUserHandler)

	// blog service; POST /blog/new and POST /blog/:id share one route
	// because httprouter rejects a static segment next to a wildcard
	router.HandlerFunc(http.MethodPost, "/api/v1/blog/:id", app.requireAuthUser(app.blogMutationHandler))
	router.HandlerFunc(http.MethodDelete, "/api/v1/blog/:id", app.requireAuthUser(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/v1/blog/:id", app.getBlogHandler)

	// ai text assist
	router.HandlerFunc(http.MethodPost, "/api/v1/ai/title", app.aiTitleHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/ai/description", app.aiDescriptionHandler)

	router.HandlerFunc(http.MethodGet, "/api/v1/healthcheck", app.healthCheckHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
