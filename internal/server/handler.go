package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/server/auth"
	"github.com/tickget/go-seatmap-engine/internal/server/store"
)

// TicketingHandler はチケッティングAPIの4エンドポイントを提供する
type TicketingHandler struct {
	store   store.Store
	holdTTL time.Duration
}

// NewTicketingHandler はTicketingHandlerを作成する
func NewTicketingHandler(s store.Store, holdTTL time.Duration) *TicketingHandler {
	return &TicketingHandler{store: s, holdTTL: holdTTL}
}

type seatStatusEntry struct {
	SeatID string `json:"seatId"`
	Status string `json:"status"`
}

type seatStatusResponse struct {
	Seats []seatStatusEntry `json:"seats"`
}

// SectionSeats は区域の座席状況を返す。
// 要求者自身のホールドは MY_RESERVED、他者のものは TAKEN になる。
func (h *TicketingHandler) SectionSeats(c echo.Context) error {
	matchID := c.Param("match_id")
	sectionID := c.Param("section_id")
	userID := c.QueryParam("userId")

	states, err := h.store.SectionStatuses(c.Request().Context(), matchID, sectionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := seatStatusResponse{Seats: make([]seatStatusEntry, 0, len(states))}
	for _, st := range states {
		status := seat.StatusTaken
		if userID != "" && st.UserID == userID {
			status = seat.StatusMyReserved
		}
		resp.Seats = append(resp.Seats, seatStatusEntry{
			SeatID: st.SeatID,
			Status: string(status),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type holdSeatRequest struct {
	SectionID string `json:"sectionId" validate:"required"`
	Row       int    `json:"row" validate:"required,min=1"`
	Col       int    `json:"col" validate:"required,min=1"`
	Grade     string `json:"grade"`
}

type holdRequest struct {
	UserID     string            `json:"userId" validate:"required"`
	Seats      []holdSeatRequest `json:"seats" validate:"required,min=1,dive"`
	TotalSeats int               `json:"totalSeats"`
}

type holdResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	HeldSeats   []string `json:"heldSeats,omitempty"`
	FailedSeats []string `json:"failedSeats,omitempty"`
}

// Hold は座席の一括確保を処理する。先勝ちの全量判定で、
// 競合時は409と競合座席の一覧を返す。
func (h *TicketingHandler) Hold(c echo.Context) error {
	matchID := c.Param("match_id")

	var req holdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "無効なリクエスト"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := requireSelf(c, req.UserID); err != nil {
		return err
	}

	seatIDs := make([]string, len(req.Seats))
	for i, s := range req.Seats {
		seatIDs[i] = fmt.Sprintf("%s-%d-%d", s.SectionID, s.Row, s.Col)
	}

	failed, err := h.store.Hold(c.Request().Context(), matchID, req.UserID, seatIDs, h.holdTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if len(failed) > 0 {
		return c.JSON(http.StatusConflict, holdResponse{
			Success:     false,
			Message:     "SEAT_TAKEN",
			FailedSeats: failed,
		})
	}
	return c.JSON(http.StatusOK, holdResponse{Success: true, Message: "HOLD_OK", HeldSeats: seatIDs})
}

type confirmResponse struct {
	MatchID   string `json:"matchId"`
	UserRank  int    `json:"userRank"`
	TotalRank int    `json:"totalRank"`
}

// Confirm はホールド済み座席の購入を確定し、着順を返す
func (h *TicketingHandler) Confirm(c echo.Context) error {
	matchID := c.Param("match_id")
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userIdが必要です"})
	}
	if err := requireSelf(c, userID); err != nil {
		return err
	}

	out, err := h.store.Confirm(c.Request().Context(), matchID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNothingHeld):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, store.ErrAlreadyConfirmed):
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, confirmResponse{
		MatchID:   matchID,
		UserRank:  out.UserRank,
		TotalRank: out.TotalRank,
	})
}

// Cancel は利用者の未確定ホールドをすべて解放する
func (h *TicketingHandler) Cancel(c echo.Context) error {
	matchID := c.Param("match_id")
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userIdが必要です"})
	}
	if err := requireSelf(c, userID); err != nil {
		return err
	}

	released, err := h.store.Release(c.Request().Context(), matchID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"released": released})
}

// requireSelf は認証済みの場合、トークン主体と操作対象の
// 利用者IDが一致することを確認する
func requireSelf(c echo.Context, userID string) error {
	sub, ok := c.Get("user_id").(string)
	if !ok {
		return nil
	}
	if sub != userID {
		return echo.NewHTTPError(http.StatusForbidden, "他の利用者の操作はできません")
	}
	return nil
}

// AuthHandler はシミュレーション参加者へのトークン発行を行う
type AuthHandler struct {
	issuer *auth.Issuer
}

// NewAuthHandler はAuthHandlerを作成する
func NewAuthHandler(issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

type tokenRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token はHS256アクセストークンを発行する
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "無効なリクエスト"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.issuer.Issue(req.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health はヘルスチェックを行う
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
