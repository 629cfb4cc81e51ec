package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/treasury"
)

// Server exposes the treasury forecasting operations over HTTP for the
// back-office UI.
type Server struct {
	Treasury *treasury.Service

	log *logrus.Logger
}

// NewServer creates a new HTTP API server instance
func NewServer(treasuryService *treasury.Service, log *logrus.Logger) *Server {
	return &Server{
		Treasury: treasuryService,
		log:      log,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/tesoreria").Subrouter()

	api.HandleFunc("/resumen", s.handleResumen).Methods(http.MethodGet)
	api.HandleFunc("/prevision", s.handlePrevision).Methods(http.MethodGet)
	api.HandleFunc("/simulacion", s.handleSimulacion).Methods(http.MethodPost)

	return r
}

// handleResumen handles GET /api/tesoreria/resumen
func (s *Server) handleResumen(w http.ResponseWriter, r *http.Request) {
	resumen, err := s.Treasury.GetResumenEjecutivo(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toResumenEjecutivoDTO(resumen))
}

// handlePrevision handles GET /api/tesoreria/prevision.
// Query parameters: dias (default 30), umbralAlerta (default 0),
// incluirProbabilidades (default false). An explicit dias=0 is an
// invalid horizon, only a missing parameter takes the default.
func (s *Server) handlePrevision(w http.ResponseWriter, r *http.Request) {
	params := treasury.ParametrosPrevision{
		Dias:         treasury.DiasPrevisionDefecto,
		UmbralAlerta: decimal.Zero,
	}

	query := r.URL.Query()

	if raw := query.Get("dias"); raw != "" {
		dias, err := strconv.Atoi(raw)
		if err != nil {
			s.writeBadRequest(w, "el parámetro dias debe ser un número entero")
			return
		}
		params.Dias = dias
	}

	if raw := query.Get("umbralAlerta"); raw != "" {
		umbral, err := decimal.NewFromString(raw)
		if err != nil {
			s.writeBadRequest(w, "el parámetro umbralAlerta debe ser un importe válido")
			return
		}
		params.UmbralAlerta = umbral
	}

	if raw := query.Get("incluirProbabilidades"); raw != "" {
		incluir, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeBadRequest(w, "el parámetro incluirProbabilidades debe ser booleano")
			return
		}
		params.IncluirProbabilidades = incluir
	}

	prevision, err := s.Treasury.GetPrevision(r.Context(), params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toPrevisionCompletaDTO(prevision))
}

// handleSimulacion handles POST /api/tesoreria/simulacion
func (s *Server) handleSimulacion(w http.ResponseWriter, r *http.Request) {
	var req simulacionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "cuerpo de la petición inválido")
		return
	}

	escenario, err := req.escenario()
	if err != nil {
		s.writeBadRequest(w, "escenario inválido: "+err.Error())
		return
	}

	resultado, err := s.Treasury.Simular(r.Context(), escenario, req.Dias)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toResultadoSimulacionDTO(resultado))
}

// writeError maps domain errors to HTTP status codes: caller-input
// errors map to 400, a source fetch failure to 502, anything else to
// 500. The UI shows these as a toast and keeps the last successful
// projection on screen.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrHorizonteInvalido),
		errors.Is(err, domain.ErrEscenarioVacio),
		errors.Is(err, domain.ErrMovimientoInvalido):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrFuenteMovimientos):
		s.log.WithError(err).Error("fallo de la fuente de movimientos")
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		s.log.WithError(err).Error("error interno calculando la previsión")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "error interno"})
	}
}

func (s *Server) writeBadRequest(w http.ResponseWriter, mensaje string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: mensaje})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}
