package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"cvtrack/internal/app"
	"cvtrack/internal/common"
	"cvtrack/internal/domain/application"
	"cvtrack/internal/http/middleware"
	"cvtrack/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type saveRequest struct {
	ID          *string `json:"id,omitempty"`
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	Source      *string `json:"source,omitempty"`
	Description *string `json:"description,omitempty"`
}

type transitionRequest struct {
	ApplicationID string `json:"application_id"`
	Comment       string `json:"comment,omitempty"`
}

// applicationResponse pairs an application with the moves currently
// available from its status.
type applicationResponse struct {
	Application          *application.Application `json:"application"`
	AvailableTransitions []application.Transition `json:"available_transitions"`
}

func newApplicationResponse(a *application.Application) applicationResponse {
	transitions := a.AvailableTransitions()
	if transitions == nil {
		transitions = []application.Transition{}
	}
	return applicationResponse{Application: a, AvailableTransitions: transitions}
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), accountID, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newApplicationResponse(item))
}

func (h *ApplicationHandler) Search(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	filter, err := searchFilterFromQuery(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	page, err := h.applications.Search(r.Context(), accountID, *filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h *ApplicationHandler) Save(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		if !h.limiter.Allow("app-save:"+accountID.String(), 30, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "save rate limit exceeded", nil))
			return
		}
	}
	serviceReq := app.SaveRequest{
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Source:      req.Source,
		Description: req.Description,
	}
	created := req.ID == nil
	if req.ID != nil {
		parsed, err := common.ParseUUID(*req.ID)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"id": "invalid uuid"}))
			return
		}
		serviceReq.ID = &parsed
	}
	saved, err := h.applications.Save(r.Context(), accountID, serviceReq)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, newApplicationResponse(saved))
}

func (h *ApplicationHandler) Transition(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	transitionID, err := transitionIDFromPath(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := common.ParseUUID(strings.TrimSpace(req.ApplicationID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"application_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		if !h.limiter.Allow("app-transition:"+applicationID.String(), 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "transition rate limit exceeded", nil))
			return
		}
	}
	updated, err := h.applications.Transition(r.Context(), accountID, transitionID, app.TransitionRequest{
		ApplicationID: applicationID,
		Comment:       req.Comment,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newApplicationResponse(updated))
}

func (h *ApplicationHandler) Archive(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Archive(r.Context(), accountID, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Delete(r.Context(), accountID, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApplicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	stats, err := h.applications.Stats(r.Context(), accountID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"stats": stats})
}

type statusView struct {
	Value    application.Status `json:"value"`
	Label    string             `json:"label"`
	Terminal bool               `json:"terminal"`
}

// Statuses returns the full status catalog with human-readable labels.
func (h *ApplicationHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	catalog := make([]statusView, 0, len(application.Statuses()))
	for _, status := range application.Statuses() {
		catalog = append(catalog, statusView{Value: status, Label: status.Label(), Terminal: status.IsTerminal()})
	}
	response.JSON(w, http.StatusOK, map[string]any{"statuses": catalog})
}

func transitionIDFromPath(r *http.Request) (int, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 {
		return 0, common.NewValidationError("invalid path", map[string]string{"transition_id": "transition id is required"})
	}
	id, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, common.NewValidationError("invalid path", map[string]string{"transition_id": "transition id must be an integer"})
	}
	return id, nil
}

func searchFilterFromQuery(r *http.Request) (*application.SearchFilter, error) {
	query := r.URL.Query()
	filter := application.SearchFilter{
		SearchTerm:    query.Get("searchTerm"),
		Sort:          query.Get("sort"),
		SortDirection: application.SortDirection(query.Get("sortDirection")),
	}
	fields := map[string]string{}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields["page"] = "page must be a positive integer"
		} else {
			filter.Page = page
		}
	}
	if raw := query.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			fields["pageSize"] = "pageSize must be a positive integer"
		} else {
			filter.PageSize = pageSize
		}
	}
	if raw := query.Get("status"); raw != "" {
		status, err := application.ParseStatus(raw)
		if err != nil {
			fields["status"] = "unknown status"
		} else {
			filter.Status = &status
		}
	}
	if raw := query.Get("includeArchived"); raw != "" {
		includeArchived, err := strconv.ParseBool(raw)
		if err != nil {
			fields["includeArchived"] = "includeArchived must be a boolean"
		} else {
			filter.IncludeArchived = includeArchived
		}
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid search query", fields)
	}
	return &filter, nil
}
