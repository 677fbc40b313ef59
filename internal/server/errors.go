package server

import (
	"net/http"

	"code.cloudfoundry.org/lager"
)

// renderErrorHandler logs the failure under the request session and answers
// 500 Internal Server Error.
func renderErrorHandler(logger lager.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		LoggerFrom(r.Context(), logger).Error("render-failed", err, lager.Data{"path": r.URL.Path})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
