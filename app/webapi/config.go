package webapi

import (
	"errors"
	"net/http"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/spamshield/app/config"
)

const maskedSecret = "*****"

// settingsHandler handles GET /api/settings request, returns effective settings with secrets masked
func (s *Server) settingsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Settings == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotImplemented, errors.New("no settings"), "settings not available")
		return
	}
	rest.RenderJSON(w, maskSecrets(*s.Settings))
}

// maskSecrets returns a copy of settings with secret values replaced
func maskSecrets(s config.Settings) config.Settings {
	mask := func(v *string) {
		if *v != "" {
			*v = maskedSecret
		}
	}
	mask(&s.Server.AuthPasswd)
	mask(&s.OpenAI.Token)
	mask(&s.Gemini.Token)
	return s
}
