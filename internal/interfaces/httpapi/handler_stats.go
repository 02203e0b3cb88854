package httpapi

import "net/http"

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	out, err := h.statsService.Summary(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "stats summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
