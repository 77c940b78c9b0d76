package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/daytrack/storage"
)

// Server is the web surface: pages rendered from the session's document,
// POST endpoints driving the edit protocol, and the raw document shim.
type Server struct {
	session *Session
	store   storage.Store
	addr    string
}

// New builds a server around a loaded session.
func New(addr string, session *Session, store storage.Store) *Server {
	return &Server{session: session, store: store, addr: addr}
}

// Handler builds the route table.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", srv.handleIndex)
	mux.HandleFunc("GET /charts/{id}", srv.handleChartPage)

	mux.HandleFunc("POST /trackables/add", srv.handleTrackableAdd)
	mux.HandleFunc("POST /trackables/{id}/question", srv.handleTrackableQuestion)
	mux.HandleFunc("POST /trackables/{id}/colour", srv.handleTrackableColour)
	mux.HandleFunc("POST /trackables/{id}/answer", srv.handleTrackableAnswer)
	mux.HandleFunc("POST /trackables/{id}/convert", srv.handleTrackableConvert)
	mux.HandleFunc("POST /trackables/{id}/scale", srv.handleTrackableScale)
	mux.HandleFunc("POST /trackables/{id}/icons/add", srv.handleTrackableIconAdd)
	mux.HandleFunc("POST /trackables/{id}/icons/remove", srv.handleTrackableIconRemove)
	mux.HandleFunc("POST /trackables/{id}/delete", srv.handleTrackableDelete)

	mux.HandleFunc("POST /chartables/add", srv.handleChartableAdd)
	mux.HandleFunc("POST /chartables/{id}/name", srv.handleChartableName)
	mux.HandleFunc("POST /chartables/{id}/colour", srv.handleChartableColour)
	mux.HandleFunc("POST /chartables/{id}/colour/clear", srv.handleChartableColourClear)
	mux.HandleFunc("POST /chartables/{id}/inverted", srv.handleChartableInverted)
	mux.HandleFunc("POST /chartables/{id}/sum/add", srv.handleSumAdd)
	mux.HandleFunc("POST /chartables/{id}/sum/replace", srv.handleSumReplace)
	mux.HandleFunc("POST /chartables/{id}/sum/remove", srv.handleSumRemove)
	mux.HandleFunc("POST /chartables/{id}/sum/multiplier", srv.handleSumMultiplier)
	mux.HandleFunc("POST /chartables/{id}/delete", srv.handleChartableDelete)

	mux.HandleFunc("POST /charts/add", srv.handleChartAdd)
	mux.HandleFunc("POST /charts/{id}/name", srv.handleChartName)
	mux.HandleFunc("POST /charts/{id}/fill", srv.handleChartFill)
	mux.HandleFunc("POST /charts/{id}/delete", srv.handleChartDelete)
	mux.HandleFunc("POST /charts/{id}/entries/add", srv.handleEntryAdd)
	mux.HandleFunc("POST /charts/{id}/entries/remove", srv.handleEntryRemove)
	mux.HandleFunc("POST /charts/{id}/entries/up", srv.handleEntryUp)
	mux.HandleFunc("POST /charts/{id}/entries/down", srv.handleEntryDown)
	mux.HandleFunc("POST /charts/{id}/entries/visible", srv.handleEntryVisible)
	mux.HandleFunc("POST /charts/{id}/entries/multiplier", srv.handleEntryMultiplier)
	mux.HandleFunc("POST /charts/{id}/entries/inverted", srv.handleEntryInverted)
	mux.HandleFunc("POST /charts/{id}/entries/convert", srv.handleEntryConvert)
	mux.HandleFunc("POST /charts/{id}/edit/add", srv.handleEditAdd)
	mux.HandleFunc("POST /charts/{id}/edit/cancel", srv.handleEditCancel)
	mux.HandleFunc("POST /charts/{id}/edit/open", srv.handleEditOpen)

	// The raw document, for clients speaking the storage contract directly.
	mux.Handle("/api/state", storage.Handler(srv.store))

	return loggingMiddleware(mux)
}

// Serve starts the server and blocks.
func (srv *Server) Serve() error {
	log.Info().Str("addr", srv.addr).Msg("server starting")
	return http.ListenAndServe(srv.addr, srv.Handler())
}
