package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	// httprouter cannot register /v1/issues/stats/dashboard alongside the
	// /v1/issues/:issueId wildcard, so the published path is dispatched from
	// the fallback instead.
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/v1/issues/stats/dashboard" {
			h.dashboardStatsHandler(w, r)
			return
		}
		h.notFoundResponse(w, r)
	})
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books", h.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:bookId", h.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/v1/books/:bookId", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:bookId", h.deleteBookHandler)

	// /v1/books/categories lands on the :bookId wildcard above and is
	// dispatched inside showBookHandler; /v1/categories is a flat alias.
	router.HandlerFunc(http.MethodGet, "/v1/categories", h.listCategoriesHandler)

	router.HandlerFunc(http.MethodGet, "/v1/members", h.listMembersHandler)
	router.HandlerFunc(http.MethodPost, "/v1/members", h.createMemberHandler)
	router.HandlerFunc(http.MethodGet, "/v1/members/:memberId", h.showMemberHandler)
	router.HandlerFunc(http.MethodPut, "/v1/members/:memberId", h.updateMemberHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/members/:memberId", h.deleteMemberHandler)

	router.HandlerFunc(http.MethodGet, "/v1/issues", h.listIssuesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/issues", h.createIssueHandler)
	router.HandlerFunc(http.MethodGet, "/v1/issues/:issueId", h.showIssueHandler)
	router.HandlerFunc(http.MethodPut, "/v1/issues/:issueId", h.updateIssueHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/issues/:issueId", h.deleteIssueHandler)
	router.HandlerFunc(http.MethodPut, "/v1/issues/:issueId/return", h.returnIssueHandler)

	// Flat alias for /v1/issues/stats/dashboard, which is served from the
	// NotFound fallback above.
	router.HandlerFunc(http.MethodGet, "/v1/dashboard", h.dashboardStatsHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.metrics(router))))
}
