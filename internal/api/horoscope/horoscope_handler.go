package horoscope

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/astraldaily/horoscope-api/internal/api"
	"github.com/astraldaily/horoscope-api/internal/api/auth"
	"github.com/astraldaily/horoscope-api/internal/types"
)

const dateLayout = "2006-01-02"

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	horoscopeService HoroscopeService
	logger           *slog.Logger
}

// NewHandlerImpl creates a new horoscope HandlerImpl instance.
func NewHandlerImpl(horoscopeService HoroscopeService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		horoscopeService: horoscopeService,
		logger:           logger,
	}
}

// Today godoc
// @Summary      Today's Horoscope
// @Description  Returns the authenticated user's horoscope for the current UTC day, generating it on first request.
// @Tags         Horoscope
// @Produce      json
// @Success      200 {object} TodayResponse "Today's Horoscope"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      503 {object} types.Response "Store Unavailable"
// @Security     BearerAuth
// @Router       /horoscope/today [get]
func (h *HandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Today"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	rec, err := h.horoscopeService.Today(ctx, userID)
	if err != nil {
		h.writeServiceError(w, r, l, err, "Failed to get today's horoscope")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, TodayResponse{
		ZodiacSign: rec.ZodiacSign,
		Date:       rec.Date.Format(dateLayout),
		Horoscope:  rec.Content,
	})
}

// History godoc
// @Summary      Horoscope History
// @Description  Returns the authenticated user's horoscopes for the trailing 7 days, newest first.
// @Tags         Horoscope
// @Produce      json
// @Success      200 {object} HistoryResponse "Horoscope History"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      503 {object} types.Response "Store Unavailable"
// @Security     BearerAuth
// @Router       /horoscope/history [get]
func (h *HandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "History"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	sign, records, err := h.horoscopeService.History(ctx, userID)
	if err != nil {
		h.writeServiceError(w, r, l, err, "Failed to get horoscope history")
		return
	}

	history := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		history = append(history, HistoryEntry{
			Date:      rec.Date.Format(dateLayout),
			Horoscope: rec.Content,
		})
	}

	api.WriteJSONResponse(w, r, http.StatusOK, HistoryResponse{
		ZodiacSign: sign,
		History:    history,
	})
}

func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error, logMsg string) {
	ctx := r.Context()
	l.ErrorContext(ctx, logMsg, slog.Any("error", err))
	switch {
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
	case errors.Is(err, types.ErrUnavailable):
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Database not available")
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
