package router

import (
	"database/sql"
	"net/http"

	"vocalnotes/config"
	"vocalnotes/internal/analyze"
	"vocalnotes/internal/events"
	noteHandler "vocalnotes/internal/note"
	"vocalnotes/internal/note/repository"
	"vocalnotes/internal/note/service"
	"vocalnotes/internal/transcribe"
	"vocalnotes/middleware"
)

func Setup(db *sql.DB, hub *events.Hub, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// WebSocket note events
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		events.ServeWs(hub, w, r)
	})

	// REST API
	noteRepo := repository.NewNoteRepository(db)
	noteService := service.NewNoteService(noteRepo, hub)
	notes := noteHandler.NewNoteHandler(noteService)

	transcriber := transcribe.NewHandler(transcribe.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL), cfg.UploadsDir)
	analyzer := analyze.NewHandler(analyze.NewExtractor(analyze.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)))

	mux.HandleFunc("POST /api/transcribe", transcriber.Transcribe)
	mux.HandleFunc("POST /api/analyze-note", analyzer.Analyze)
	mux.HandleFunc("GET /api/notes", notes.ListNotes)
	mux.HandleFunc("POST /api/notes", notes.CreateNote)
	mux.HandleFunc("PUT /api/notes/{id}", notes.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", notes.DeleteNote)

	// Uploaded audio artifacts (legacy; files are removed after transcription)
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	return middleware.CORSMiddleware(mux)
}
