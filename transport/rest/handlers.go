package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type gameResponse struct {
	Game     *entity.Snapshot `json:"game"`
	Accepted *bool            `json:"accepted,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.NewGame(r.Context())
	if err != nil {
		that.writeError(w, "handleNewGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, gameResponse{Game: game})
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "handleGetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

// handleSelectCell answers 200 for rejected moves too; the accepted flag tells them apart.
func (that *Server) handleSelectCell(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	cell, err := strconv.Atoi(vars["cell"])
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell must be an integer"})
		return
	}

	game, accepted, err := that.games.SelectCell(r.Context(), vars["id"], cell)
	if err != nil {
		that.writeError(w, "handleSelectCell", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game, Accepted: &accepted})
}

func (that *Server) handleResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "handleResetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.EndGame(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.writeError(w, "handleEndGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
