package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sarderiftekhar/zzstay-com/internal/model/chat"
	"github.com/sarderiftekhar/zzstay-com/pkg/utils"
)

// TurnRunner executes one conversation turn.
type TurnRunner interface {
	Run(ctx context.Context, transcript []chat.Message) (chat.TurnResult, error)
}

// Handler exposes the conversational search endpoint.
type Handler struct {
	chatSvc TurnRunner
}

// New creates the chat handler.
func New(chatSvc TurnRunner) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat runs one turn over the transcript in the request body.
// A missing or non-array messages field is a 400; everything the turn
// pipeline fails on is a 500 with a stage-tagged diagnostic.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Messages []chat.Message `json:"messages"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "messages required")
		return
	}
	if payload.Messages == nil {
		utils.RespondError(w, http.StatusBadRequest, "messages required")
		return
	}

	result, err := h.chatSvc.Run(r.Context(), payload.Messages)
	if err != nil {
		log.Printf("[chat] turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
