package misc

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/fitplan/pkg"

	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, status)
}
