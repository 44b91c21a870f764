package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/rs/zerolog/log"
)

const readTimeout = 10 * time.Second

// Server serves the todo/user REST API from a Database.
type Server struct {
	db     *Database
	router *mux.Router
}

// NewServer creates a Server with all routes registered.
func NewServer(db *Database) *Server {
	s := &Server{db: db, router: mux.NewRouter()}

	s.router.Use(logRequests)

	s.router.Methods(http.MethodGet).Path("/todos").HandlerFunc(s.listTodos)
	s.router.Methods(http.MethodPost).Path("/todos").HandlerFunc(s.createTodo)
	s.router.Methods(http.MethodPatch).Path("/todos/{id:[0-9]+}").HandlerFunc(s.patchTodo)
	s.router.Methods(http.MethodDelete).Path("/todos/{id:[0-9]+}").HandlerFunc(s.deleteTodo)
	s.router.Methods(http.MethodGet).Path("/users").HandlerFunc(s.listUsers)

	return s
}

// Handler returns the router wrapped with CORS headers so browser clients can use it too.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return cors(s.router)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: readTimeout,
	}

	done := make(chan struct{})

	go func() {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down server")
		}

		close(done)
	}()

	log.Info().Str("addr", addr).Msg("serving todo api")

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done

	return nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		log.Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Dur("duration", m.Duration).
			Int("status", m.Code).
			Msg("handled")
	})
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.db.Todos(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.Users(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft

	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json: " + err.Error()})

		return
	}

	todo, err := s.db.NewTodo(r.Context(), draft)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) patchTodo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var patch model.CompletedPatch

	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json: " + err.Error()})

		return
	}

	todo, err := s.db.SetCompleted(r.Context(), id, patch.Completed)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := s.db.DeleteTodo(r.Context(), id); err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, ErrTodoNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnknownUser):
		status = http.StatusUnprocessableEntity
	default:
		log.Error().Err(err).Msg("error handling request")
	}

	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("error writing response")
	}
}
