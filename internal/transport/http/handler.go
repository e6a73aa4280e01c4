package http

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/lantalk/relay-service/internal/domain"
	"github.com/lantalk/relay-service/internal/store"
	"github.com/lantalk/relay-service/pkg/httputil"
)

// Handler is the administrative control surface: token management plus the
// SPA index. Chat itself never goes through here.
type Handler struct {
	tokens    *store.TokenDirectory
	indexPath string
}

func NewHandler(tokens *store.TokenDirectory, indexPath string) *Handler {
	return &Handler{tokens: tokens, indexPath: indexPath}
}

// POST /api/tokens
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokens.Issue()
	if err != nil {
		slog.Error("handler.CreateToken:", slog.Any("err", err))
		httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	httputil.JSON(w, http.StatusCreated, TokenResponse{Token: token})
}

// GET /api/tokens
func (h *Handler) ListTokens(w http.ResponseWriter, r *http.Request) {
	tokens := h.tokens.List()
	sort.Strings(tokens)

	httputil.JSON(w, http.StatusOK, TokensListResponse{Tokens: tokens})
}

// DELETE /api/tokens/{token}
func (h *Handler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.tokens.Delete(token); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			httputil.JSON(w, http.StatusNotFound, ErrorResponse{Error: "token not found"})
			return
		}
		slog.Error("handler.DeleteToken:", slog.Any("err", err))
		httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET / — SPA index, if the file is deployed next to the binary.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.indexPath); err != nil {
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, h.indexPath)
}
