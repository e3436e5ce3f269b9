package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/netpulse/netpulse-api/common"
	"github.com/netpulse/netpulse-api/usecase"
)

type (
	// API struct for netpulse-api
	API struct {
		speedTest       *usecase.SpeedTestUseCase
		feedback        *usecase.FeedbackUseCase
		privacySettings *usecase.PrivacySettingsUseCase
		databaseAdapter usecase.DatabaseAdapter
		logger          *log.Logger
		maxBodyBytes    int64
	}

	healthStatus struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
)

const (
	// DataAPIPrefix logging prefix
	DataAPIPrefix = "api/netpulse "
)

var (
	errorHealthCheck    = common.DetailedError{Status: http.StatusInternalServerError, Code: "health_check_error", Message: "store is not reachable"}
	errorInvalidPayload = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "invalid request body"}
	errorBodyTooLarge   = common.DetailedError{Status: http.StatusRequestEntityTooLarge, Code: "body_too_large", Message: "request body too large"}
	errorLoadingEvents  = common.DetailedError{Status: http.StatusInternalServerError, Code: "json_marshal_error", Message: "internal server error"}
)

func InitAPI(speedTestUC *usecase.SpeedTestUseCase, feedbackUC *usecase.FeedbackUseCase, privacySettingsUC *usecase.PrivacySettingsUseCase, dbAdapter usecase.DatabaseAdapter, logger *log.Logger, maxBodyBytes int64) *API {
	return &API{
		speedTest:       speedTestUC,
		feedback:        feedbackUC,
		privacySettings: privacySettingsUC,
		databaseAdapter: dbAdapter,
		logger:          logger,
		maxBodyBytes:    maxBodyBytes,
	}
}

// SetHandlers set the API routes
func (a *API) SetHandlers(prefix string, rtr *mux.Router) {
	rtr.HandleFunc(prefix+"/api/tests", a.middleware(a.postSpeedTest)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/api/tests", a.middleware(a.getSpeedTests)).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/api/feedback", a.middleware(a.postFeedback)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/api/privacy-settings/{userId}", a.middleware(a.getPrivacySettings, "userId")).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/api/privacy-settings/{userId}", a.middleware(a.putPrivacySettings, "userId")).Methods(http.MethodPut)

	rtr.HandleFunc(prefix+"/api/health", a.getHealth).Methods(http.MethodGet)
	rtr.PathPrefix(prefix + "/api/").HandlerFunc(a.middleware(a.getNotFound))
}

func (a *API) getNotFound(ctx context.Context, res *common.HttpResponseWriter) error {
	res.WriteHeader(http.StatusNotFound)
	return nil
}

// getHealth reports whether the service and its store are up.
// 200 {status, timestamp} when the store answers the ping, 500 otherwise.
func (a *API) getHealth(res http.ResponseWriter, req *http.Request) {
	start := time.Now()
	if err := a.databaseAdapter.Ping(); err != nil {
		errorLog := errorHealthCheck.SetInternalMessage(err)
		a.jsonError(res, errorLog, start)
		return
	}

	s := healthStatus{Status: "ok", Timestamp: time.Now().UTC()}
	if jsonDetails, err := json.Marshal(s); err != nil {
		a.jsonError(res, errorLoadingEvents.SetInternalMessage(err), start)
	} else {
		res.Header().Add("content-type", "application/json")
		res.WriteHeader(http.StatusOK)
		res.Write(jsonDetails)
	}
}

// log error detail and write as application/json
func (a *API) jsonError(res http.ResponseWriter, err common.DetailedError, startedAt time.Time) {
	a.logError(&err, startedAt)
	jsonErr, _ := json.Marshal(err)

	res.Header().Add("content-type", "application/json")
	res.WriteHeader(err.Status)
	res.Write(jsonErr)
}

func (a *API) logError(err *common.DetailedError, startedAt time.Time) {
	err.ID = uuid.New().String()
	a.logger.Println(DataAPIPrefix, fmt.Sprintf("[%s][%s] failed after [%.3f]secs with error [%s][%s] ", err.ID, err.Code, time.Since(startedAt).Seconds(), err.Message, err.InternalMessage))
}
