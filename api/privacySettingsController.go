package api

import (
	"context"
	"encoding/json"

	"github.com/netpulse/netpulse-api/common"
	"github.com/netpulse/netpulse-api/schema"
)

// getPrivacySettings returns the settings for a user, creating the document
// with defaults on first read.
func (a *API) getPrivacySettings(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userId"]

	settings, getErr := a.privacySettings.Get(ctx, res.TraceID, userID)
	if getErr != nil {
		return res.WriteError(getErr)
	}
	return res.WriteJSON(settings)
}

// putPrivacySettings upserts the supplied subset of settings fields and
// returns the resulting document.
func (a *API) putPrivacySettings(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userId"]

	var patch schema.PrivacySettingsPatch
	if err := json.Unmarshal(res.Body, &patch); err != nil {
		writeErr := errorInvalidPayload.SetInternalMessage(err)
		return res.WriteError(&writeErr)
	}

	settings, updateErr := a.privacySettings.Update(ctx, res.TraceID, userID, patch)
	if updateErr != nil {
		return res.WriteError(updateErr)
	}
	return res.WriteJSON(settings)
}
