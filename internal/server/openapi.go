package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses. Error holds one of
// the failure codes: no_name, no_id, no_event, already_played,
// db_error, error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "CyberSnake Quiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the CyberSnake live quiz game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/event
	getEvent, _ := r.NewOperationContext(http.MethodGet, "/api/event")
	getEvent.SetSummary("Get event info")
	getEvent.SetDescription("Returns the current event, the full event list (newest first) and the live leaderboard.")
	getEvent.AddRespStructure(EventInfoResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getEvent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getEvent)

	// GET /api/events/{eventID}/results
	getResults, _ := r.NewOperationContext(http.MethodGet, "/api/events/{eventID}/results")
	getResults.SetSummary("Get event results")
	getResults.SetDescription("Returns the stored player and answer rows for an event, for history views.")
	getResults.AddRespStructure(EventResultsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getResults)

	// GET /api/stream
	getStream, _ := r.NewOperationContext(http.MethodGet, "/api/stream")
	getStream.SetSummary("SSE update stream")
	getStream.SetDescription("Server-Sent Events stream carrying a fresh leaderboard after every mutating action.")
	getStream.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getStream)

	// GET /ws/stream
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws/stream")
	getWS.SetSummary("WebSocket update stream")
	getWS.SetDescription("Upgrades to a WebSocket delivering the same updates as /api/stream.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// POST /api/players
	postRegister, _ := r.NewOperationContext(http.MethodPost, "/api/players")
	postRegister.SetSummary("Register player")
	postRegister.SetDescription("Registers a player for the current event. Each (org, name, designation) tuple may register once per event.")
	postRegister.AddReqStructure(RegisterRequest{})
	postRegister.AddRespStructure(RegisterResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postRegister)

	// POST /api/players/{playerID}/answers
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/players/{playerID}/answers")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Records an answered question and the client-computed score. A no-op for unknown or finished players.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postAnswer)

	// POST /api/players/{playerID}/finish
	postFinish, _ := r.NewOperationContext(http.MethodPost, "/api/players/{playerID}/finish")
	postFinish.SetSummary("Finish quiz")
	postFinish.SetDescription("Marks the player finished (first call wins) and returns their rank and the leaderboard.")
	postFinish.AddRespStructure(FinishResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postFinish.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postFinish)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the authenticated admin.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// POST /api/admin/events
	postEvent, _ := r.NewOperationContext(http.MethodPost, "/api/admin/events")
	postEvent.SetSummary("Create event")
	postEvent.SetDescription("Creates a new event, makes it current and clears the live leaderboard.")
	postEvent.AddReqStructure(CreateEventRequest{})
	postEvent.AddRespStructure(CreateEventResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postEvent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postEvent)

	// DELETE /api/admin/events/{eventID}
	delEvent, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/events/{eventID}")
	delEvent.SetSummary("Delete event")
	delEvent.SetDescription("Deletes an event with its players and answers; the newest remaining event becomes current.")
	delEvent.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	delEvent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(delEvent)

	// GET /api/admin/events/{eventID}/export.csv
	getExport, _ := r.NewOperationContext(http.MethodGet, "/api/admin/events/{eventID}/export.csv")
	getExport.SetSummary("Export event results")
	getExport.SetDescription("Downloads the event results as CSV, one row per answered question per player.")
	getExport.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/csv"))
	getExport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getExport)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
