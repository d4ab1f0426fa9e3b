package server

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"sheets-proxy/internal/config"
	"sheets-proxy/internal/models"
	"sheets-proxy/internal/sheets"
	"sheets-proxy/internal/util"
)

const (
	msgNotInitialized  = "Google Sheets service not initialized"
	msgSheetIDRequired = "sheetId parameter is required"
)

type errorKind int

const (
	serviceUnavailable errorKind = iota
	invalidRequest
	upstreamFailure
)

func (k errorKind) status() int {
	if k == invalidRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// New builds the HTTP server. sh may be nil when credentials failed to load;
// the sheets route then answers every request with an error.
func New(cfg config.Config, sh *sheets.Client) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: Handler(sh),
	}
}

func Handler(sh *sheets.Client) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/google-sheets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			util.WriteJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed"})
			return
		}
		if sh == nil {
			writeError(w, serviceUnavailable, msgNotInitialized)
			return
		}

		q := models.QueryFromURL(r.URL.Query())
		if q.SheetID == "" {
			writeError(w, invalidRequest, msgSheetIDRequired)
			return
		}

		values, err := sh.GetValues(r.Context(), q)
		if err != nil {
			msg := err.Error()
			var uerr *sheets.UpstreamError
			if errors.As(err, &uerr) {
				msg = uerr.Message
			}
			log.WithFields(log.Fields{
				"sheetId": q.SheetID,
				"range":   q.Range,
				"err":     err,
			}).Error("fetching google sheet")
			writeError(w, upstreamFailure, msg)
			return
		}

		log.WithFields(log.Fields{
			"sheetId": q.SheetID,
			"range":   q.Range,
			"rows":    len(values),
		}).Debug("fetched google sheet")
		util.WriteJSON(w, http.StatusOK, models.ValuesResponse{Values: values})
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		state := "ready"
		if sh == nil {
			state = "unavailable"
		}
		util.WriteJSON(w, http.StatusOK, models.HealthResponse{
			Status: "ok",
			Sheets: state,
			TS:     util.NowISO(),
		})
	})

	return mux
}

func writeError(w http.ResponseWriter, kind errorKind, msg string) {
	util.WriteJSON(w, kind.status(), models.ErrorResponse{Error: msg})
}
