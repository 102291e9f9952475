package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/gzhole/veritas/internal/gateway"
)

// readRequest decodes an analyze/filter body: {"content": str, "policy"?: str,
// "context"?: obj}. It writes the error response itself and reports false
// when the body is unusable.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (gateway.Request, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return gateway.Request{}, false
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return gateway.Request{}, false
	}

	if !gjson.ValidBytes(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return gateway.Request{}, false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		writeError(w, http.StatusUnprocessableEntity, "request body must be a JSON object")
		return gateway.Request{}, false
	}

	content := root.Get("content")
	if !content.Exists() {
		writeError(w, http.StatusUnprocessableEntity, "field 'content' is required")
		return gateway.Request{}, false
	}
	if content.Type != gjson.String {
		writeError(w, http.StatusUnprocessableEntity, "field 'content' must be a string")
		return gateway.Request{}, false
	}

	policy := root.Get("policy")
	if policy.Exists() && policy.Type != gjson.String && policy.Type != gjson.Null {
		writeError(w, http.StatusUnprocessableEntity, "field 'policy' must be a string")
		return gateway.Request{}, false
	}
	if ctx := root.Get("context"); ctx.Exists() && !ctx.IsObject() && ctx.Type != gjson.Null {
		writeError(w, http.StatusUnprocessableEntity, "field 'context' must be an object")
		return gateway.Request{}, false
	}

	return gateway.Request{
		Content: content.String(),
		Policy:  policy.String(),
		Source:  r.RemoteAddr,
	}, true
}
