package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/avatar"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
)

// handleAvatar serves /avatars/{slug}.png?size=N.
func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok || name == "" {
		NotFoundError("Avatar not found").Write(w)
		return
	}

	size := avatar.DefaultSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			BadRequestError("Invalid avatar size").Write(w)
			return
		}
		size = n
	}

	png, err := avatar.Render(name, size)
	if errors.Is(err, avatar.ErrInvalidSize) {
		BadRequestError("Invalid avatar size").Write(w)
		return
	}
	if err != nil {
		s.writeError(w, r, applog.ComponentAvatar, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
