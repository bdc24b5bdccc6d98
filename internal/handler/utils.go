package handler

import (
	"net/http"
	"strconv"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/pkg/httputils"

	"github.com/gorilla/mux"
)

type PongResponse struct {
	Message string `json:"message"`
}

// Ping
// @Summary Ping the server
// @Description Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} PongResponse
// @Router /ping [get]
func Ping(w http.ResponseWriter, r *http.Request) {
	httputils.ResponseJSON(w, http.StatusOK, PongResponse{Message: "Pong"})
}

func chatIDFromPath(r *http.Request) (uint, error) {
	chatID, err := strconv.ParseUint(mux.Vars(r)["chatId"], 10, 0)
	if err != nil {
		return 0, model.NewValidationError("Invalid chat id")
	}
	return uint(chatID), nil
}
