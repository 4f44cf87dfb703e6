package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-widget/internal/audit"
	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	"github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/dto"
	"github.com/BruksfildServices01/booking-widget/internal/httperr"
	"github.com/BruksfildServices01/booking-widget/internal/httpresp"
	"github.com/BruksfildServices01/booking-widget/internal/logging"
	"github.com/BruksfildServices01/booking-widget/internal/metrics"
	"github.com/BruksfildServices01/booking-widget/internal/middleware"
	"github.com/BruksfildServices01/booking-widget/internal/session"
	"github.com/BruksfildServices01/booking-widget/internal/timezone"
	"github.com/BruksfildServices01/booking-widget/internal/validators"
	"github.com/BruksfildServices01/booking-widget/internal/widget"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarProvider interface {
	Execute(ctx context.Context, today time.Time) ([]availability.DayAvailability, error)
}

type SubmitterFactory interface {
	ForSession(sessionID string) booking.Submitter
}

type WidgetHandlerConfig struct {
	JWTSecret     string
	SessionTTL    time.Duration
	SubmitTimeout time.Duration
	Location      *time.Location
}

type WidgetHandler struct {
	cfg       WidgetHandlerConfig
	store     *session.Store
	calendar  CalendarProvider
	submitter SubmitterFactory
	keys      *widget.KeyRing
	audit     *audit.Dispatcher
	metrics   *metrics.BookingMetrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewWidgetHandler(
	cfg WidgetHandlerConfig,
	store *session.Store,
	calendar CalendarProvider,
	submitter SubmitterFactory,
	keys *widget.KeyRing,
	audit *audit.Dispatcher,
	m *metrics.BookingMetrics,
	logger *zap.Logger,
) *WidgetHandler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &WidgetHandler{
		cfg:       cfg,
		store:     store,
		calendar:  calendar,
		submitter: submitter,
		keys:      keys,
		audit:     audit,
		metrics:   m,
		logger:    logging.OrNop(logger),
		now:       time.Now,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSessionRequest struct {
	Theme  string `json:"theme"`
	Lang   string `json:"lang"`
	APIKey string `json:"api_key"`
}

// SelectDateRequest clears the selection when Date is null.
type SelectDateRequest struct {
	Date *string `json:"date"`
}

type SelectSlotRequest struct {
	TimeSlotID *string `json:"time_slot_id"`
}

// UpdateFormRequest is a partial update; absent keys keep their value.
// Date and TimeSlot can change the selection but not clear it: an explicit
// null is rejected, clearing goes through PUT /session/date or /slot.
type UpdateFormRequest struct {
	Name     *string         `json:"name"`
	Phone    *string         `json:"phone"`
	Email    *string         `json:"email"`
	Notes    *string         `json:"notes"`
	Date     json.RawMessage `json:"date"`
	TimeSlot json.RawMessage `json:"time_slot"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *WidgetHandler) Availability(c *gin.Context) {
	days, err := h.calendar.Execute(c.Request.Context(), h.today())
	if err != nil {
		h.logger.Error("calendar generation failed", zap.Error(err))
		httperr.Internal(c, "availability_unavailable", "Availability could not be generated.")
		return
	}
	httpresp.List(c, dto.Days(days))
}

// ======================================================
// SESSION LIFECYCLE
// ======================================================

func (h *WidgetHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	params := widget.Normalize(widget.Params{
		Theme:  req.Theme,
		Lang:   req.Lang,
		APIKey: req.APIKey,
	})
	if !h.keys.Allows(params.APIKey) {
		httperr.Forbidden(c, "invalid_api_key", "API key not accepted.")
		return
	}

	days, err := h.calendar.Execute(c.Request.Context(), h.today())
	if err != nil {
		h.logger.Error("calendar generation failed", zap.Error(err))
		httperr.Internal(c, "availability_unavailable", "Availability could not be generated.")
		return
	}

	sess := h.store.Create(params, func(id string) *booking.Flow {
		return booking.New(days, h.submitter.ForSession(id),
			booking.WithTimeout(h.cfg.SubmitTimeout),
			booking.WithLogger(h.logger.With(zap.String("session_id", id))),
			booking.WithLang(params.Lang),
		)
	})

	token, err := middleware.IssueSessionToken(h.cfg.JWTSecret, sess.ID, h.cfg.SessionTTL, h.now())
	if err != nil {
		h.store.Delete(sess.ID)
		h.logger.Error("session token failed", zap.Error(err))
		httperr.Internal(c, "session_token_failed", "Session could not be started.")
		return
	}

	h.metrics.ObserveSession("created")
	h.dispatch(audit.Event{
		SessionID: sess.ID,
		Action:    audit.ActionSessionStarted,
		Entity:    "session",
		Metadata:  map[string]string{"theme": params.Theme, "lang": params.Lang},
	})

	httpresp.Created(c, dto.Session(sess.ID, token, params, sess.Flow.State()))
}

func (h *WidgetHandler) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.Session(sess.ID, "", sess.Params, sess.Flow.State()))
}

func (h *WidgetHandler) DeleteSession(c *gin.Context) {
	id := middleware.SessionID(c)
	if !h.store.Delete(id) {
		httperr.NotFound(c, httperr.CodeSessionNotFound, "Session not found.")
		return
	}

	h.metrics.ObserveSession("ended")
	h.dispatch(audit.Event{
		SessionID: id,
		Action:    audit.ActionSessionEnded,
		Entity:    "session",
	})
	httpresp.NoContent(c)
}

// ======================================================
// SELECTION AND FORM
// ======================================================

func (h *WidgetHandler) SelectDate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	date, err := h.parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	h.respond(c, sess, sess.Flow.SetSelectedDate(date))
}

func (h *WidgetHandler) SelectSlot(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	h.respond(c, sess, sess.Flow.SetSelectedTimeSlot(req.TimeSlotID))
}

func (h *WidgetHandler) UpdateForm(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rawDate, err := optionalString(req.Date)
	if err != nil {
		h.writePatchError(c, err)
		return
	}
	slot, err := optionalString(req.TimeSlot)
	if err != nil {
		h.writePatchError(c, err)
		return
	}

	date, err := h.parseDate(rawDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	h.respond(c, sess, sess.Flow.UpdateFormData(booking.FormPatch{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
		Date:     date,
		TimeSlot: slot,
	}))
}

// ======================================================
// NAVIGATION
// ======================================================

func (h *WidgetHandler) NextStep(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Flow.GoToNextStep()
	h.respond(c, sess, nil)
}

func (h *WidgetHandler) PreviousStep(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Flow.GoToPreviousStep()
	h.respond(c, sess, nil)
}

func (h *WidgetHandler) Reset(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, sess, sess.Flow.Reset())
}

// ======================================================
// CONFIRMATION
// ======================================================

// OpenConfirmation checks the contact details before showing the review
// dialog.
func (h *WidgetHandler) OpenConfirmation(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	form := sess.Flow.State().FormData
	if problems := validators.ContactProblems(form.Name, form.Phone, form.Email); len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error_code": "invalid_contact",
			"message":    "Contact details are incomplete: " + strings.Join(problems, ", ") + ".",
			"fields":     problems,
		})
		return
	}

	sess.Flow.OpenConfirmation()
	h.respond(c, sess, nil)
}

func (h *WidgetHandler) CloseConfirmation(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Flow.CloseConfirmation()
	h.respond(c, sess, nil)
}

// Complete starts the submission and answers right away; the widget polls
// the session until IsLoading clears. The submission outlives the request.
func (h *WidgetHandler) Complete(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if _, err := sess.Flow.StartComplete(context.WithoutCancel(c.Request.Context())); err != nil {
		h.writeFlowError(c, err)
		return
	}

	httpresp.Accepted(c, dto.State(sess.Flow.State()))
}

// ======================================================
// HELPERS
// ======================================================

func (h *WidgetHandler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := h.store.Get(middleware.SessionID(c))
	if err != nil {
		h.writeFlowError(c, err)
		return nil, false
	}
	return sess, true
}

func (h *WidgetHandler) respond(c *gin.Context, sess *session.Session, err error) {
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	httpresp.OK(c, dto.State(sess.Flow.State()))
}

func (h *WidgetHandler) writeFlowError(c *gin.Context, err error) {
	switch code := httperr.CodeOf(err); code {
	case httperr.CodeSessionNotFound:
		httperr.NotFound(c, code, "Session not found or expired.")
	case httperr.CodeInvalidSelection:
		httperr.Write(c, http.StatusUnprocessableEntity, code, err.Error())
	case httperr.CodeInProgress:
		httperr.Conflict(c, code, "A booking is already being submitted.")
	case httperr.CodeAlreadyComplete:
		httperr.Conflict(c, code, "This booking is already complete.")
	case httperr.CodeSubmissionFailed:
		httperr.Write(c, http.StatusBadGateway, code, "The booking could not be submitted.")
	default:
		h.logger.Error("unexpected widget error", zap.Error(err))
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}

var errNullSelection = errors.New("selection cannot be cleared through the form")

// optionalString decodes a key that may be absent. A present null is
// errNullSelection.
func optionalString(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if string(raw) == "null" {
		return nil, errNullSelection
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (h *WidgetHandler) writePatchError(c *gin.Context, err error) {
	if errors.Is(err, errNullSelection) {
		httperr.BadRequest(c, "selection_not_clearable",
			"Use PUT /api/widget/session/date or /slot with null to clear the selection.")
		return
	}
	httperr.BadRequest(c, "invalid_request", "Invalid request body.")
}

func (h *WidgetHandler) parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := timezone.ParseDate(*s, h.cfg.Location)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *WidgetHandler) today() time.Time {
	return timezone.Today(h.now(), h.cfg.Location)
}

func (h *WidgetHandler) dispatch(ev audit.Event) {
	if h.audit != nil {
		h.audit.Dispatch(ev)
	}
}
