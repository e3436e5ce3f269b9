package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/netpulse/netpulse-api/common"
)

// HandlerLoggerFunc expose our httpResponseWriter API
type HandlerLoggerFunc func(context.Context, *common.HttpResponseWriter) error

// middleware wraps an API function: assigns a trace id, bounds and reads the
// request body, decodes route parameters and logs the request outcome.
func (a *API) middleware(fn HandlerLoggerFunc, params ...string) http.HandlerFunc {
	// The mux handler func:
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		start := time.Now().UTC()

		// Get the request information before writing anything
		logErrors := make([]string, 0, 5)
		logRequest := fmt.Sprintf("%s - %s %s HTTP/%d.%d", r.RemoteAddr, r.Method, r.URL.String(), r.ProtoMajor, r.ProtoMinor)

		traceID := r.Header.Get("x-netpulse-trace-session")
		if !common.IsValidUUID(traceID) {
			// We want a trace id, but for now we do not enforce it
			logErrors = append(logErrors, fmt.Sprintf("no-trace:\"%s\"", traceID))
			traceID = uuid.New().String()
		}

		res := common.HttpResponseWriter{
			Header:     r.Header.Clone(), // Clone the header, to be sure
			URL:        r.URL,
			VARS:       nil,
			TraceID:    traceID,
			StatusCode: http.StatusOK, // Default status
			Err:        nil,
		}

		if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
			body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBodyBytes))
			if readErr != nil {
				writeErr := errorBodyTooLarge.SetInternalMessage(readErr)
				res.WriteError(&writeErr)
			}
			res.Body = body
		}

		// The handler have parameters, get them
		if len(params) > 0 {
			res.VARS = mux.Vars(r) // Decode route parameter

			if common.Contains(params, "userId") {
				// Quick verification on the userId for security reason.
				// Partial but may help without being a burden.
				if len(res.VARS["userId"]) > 64 {
					res.WriteError(&common.DetailedError{
						Status:          http.StatusBadRequest,
						Code:            "invalid_userid",
						Message:         "Invalid parameter userId",
						InternalMessage: "userId longer than 64 characters",
					})
				}
			}
		}

		// Maintainers: no read from the request below this point!

		// Make the call to the API function if we can:
		if res.Err == nil {
			err = fn(r.Context(), &res)
			if err != nil {
				logErrors = append(logErrors, fmt.Sprintf("efn:\"%s\"", err))
			}
		}

		// We will send a JSON, so advertise it for all of our requests
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(res.StatusCode)
		_, err = w.Write([]byte(res.WriteBuffer.String()))
		if err != nil {
			logErrors = append(logErrors, fmt.Sprintf("eww:\"%s\"", err))
		}

		// Log errors management
		if res.Err != nil {
			if res.Err.Code != "" {
				logErrors = append(logErrors, fmt.Sprintf("code:\"%s\"", res.Err.Code))
			}
			if res.Err.InternalMessage != "" {
				logErrors = append(logErrors, fmt.Sprintf("err:\"%s\"", res.Err.InternalMessage))
			}
		}

		// Get the time spent on it
		end := time.Now().UTC()
		dur := end.Sub(start).Milliseconds()
		// Log the message
		var logError string
		if len(logErrors) > 0 {
			logError = fmt.Sprintf("{%s} - ", strings.Join(logErrors, ","))
		}

		a.logger.Printf("{%s} %s %d - %s%d ms - %d bytes", traceID, logRequest, res.StatusCode, logError, dur, res.Size)
	}
}
