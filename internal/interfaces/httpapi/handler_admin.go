package httpapi

import (
	"net/http"
)

// AdminLogin only checks the password. The caller keeps sending it on every admin request.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLogin")
	defer span.End()

	var req adminLoginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.gate.Authenticate(req.Password); err != nil {
		h.logger.WarnContext(ctx, "admin login rejected", "remote_addr", r.RemoteAddr)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDatabase")
	defer span.End()

	if err := requireAdminContext(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.adminService.ResetDatabase(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset database failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.WarnContext(ctx, "database reset", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusNoContent)
}
