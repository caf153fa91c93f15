// Package ticketing はチケッティングAPIのHTTPクライアント実装。
package ticketing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

const defaultTimeout = 5 * time.Second

// ErrUnexpectedStatus は想定外のHTTPステータスを表す
var ErrUnexpectedStatus = errors.New("チケッティングAPIが想定外のステータスを返しました")

// Client はチケッティングAPIへのHTTPクライアント。
// booking.Client を実装する。
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option はクライアント構築時の調整
type Option func(*Client)

// WithHTTPClient は下位のHTTPクライアントを差し替える
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBearerToken は全要求に付けるトークンを設定する
func WithBearerToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New はクライアントを作る
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type seatStatusResponse struct {
	Seats []struct {
		SeatID string `json:"seatId"`
		Status string `json:"status"`
	} `json:"seats"`
}

// SectionStatus は区域の座席状況を取得する
func (c *Client) SectionStatus(ctx context.Context, matchID, sectionID, userID string) ([]seat.StatusEntry, error) {
	u := fmt.Sprintf("%s/ticketing/matches/%s/sections/%s/seats?userId=%s",
		c.baseURL, url.PathEscape(matchID), url.PathEscape(sectionID), url.QueryEscape(userID))

	var res seatStatusResponse
	if err := c.do(ctx, http.MethodGet, u, nil, http.StatusOK, &res); err != nil {
		return nil, err
	}

	entries := make([]seat.StatusEntry, 0, len(res.Seats))
	for _, s := range res.Seats {
		entries = append(entries, seat.StatusEntry{
			SeatID: s.SeatID,
			Status: seat.Status(s.Status),
		})
	}
	return entries, nil
}

type holdSeatPayload struct {
	SectionID string `json:"sectionId"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Grade     string `json:"grade"`
}

type holdRequestPayload struct {
	UserID     string            `json:"userId"`
	Seats      []holdSeatPayload `json:"seats"`
	TotalSeats int               `json:"totalSeats"`
}

type holdResponsePayload struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	HeldSeats   []string `json:"heldSeats"`
	FailedSeats []string `json:"failedSeats"`
}

// Hold は選択座席の一括確保を要求する。
// 409はエラーではなく拒否として返す。
func (c *Client) Hold(ctx context.Context, req booking.HoldRequest) (booking.HoldResult, error) {
	u := fmt.Sprintf("%s/ticketing/matches/%s/hold", c.baseURL, url.PathEscape(req.MatchID))

	payload := holdRequestPayload{
		UserID:     req.UserID,
		TotalSeats: req.TotalSeats,
	}
	for _, s := range req.Seats {
		payload.Seats = append(payload.Seats, holdSeatPayload{
			SectionID: s.SectionID,
			Row:       s.Row,
			Col:       s.Col,
			Grade:     string(s.Grade),
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return booking.HoldResult{}, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return booking.HoldResult{}, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return booking.HoldResult{}, fmt.Errorf("ホールド要求の送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	var res holdResponsePayload
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return booking.HoldResult{}, fmt.Errorf("ホールド応答の解析に失敗: %w", err)
		}
	case http.StatusConflict:
		// 競合。本文が読めなくても拒否として扱う
		_ = json.NewDecoder(resp.Body).Decode(&res)
		res.Success = false
		if res.Message == "" {
			res.Message = "SEAT_TAKEN"
		}
	default:
		return booking.HoldResult{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return booking.HoldResult{
		Success:     res.Success,
		Message:     res.Message,
		HeldSeats:   res.HeldSeats,
		FailedSeats: res.FailedSeats,
	}, nil
}

type confirmResponsePayload struct {
	MatchID   string `json:"matchId"`
	UserRank  int    `json:"userRank"`
	TotalRank int    `json:"totalRank"`
}

// Confirm はホールド済み座席の購入を確定する
func (c *Client) Confirm(ctx context.Context, matchID, userID string) (booking.ConfirmResult, error) {
	u := fmt.Sprintf("%s/ticketing/matches/%s/confirm?userId=%s",
		c.baseURL, url.PathEscape(matchID), url.QueryEscape(userID))

	var res confirmResponsePayload
	if err := c.do(ctx, http.MethodPost, u, nil, http.StatusOK, &res); err != nil {
		return booking.ConfirmResult{}, err
	}
	return booking.ConfirmResult{
		MatchID:   res.MatchID,
		UserRank:  res.UserRank,
		TotalRank: res.TotalRank,
	}, nil
}

// Cancel はホールドを解放する
func (c *Client) Cancel(ctx context.Context, matchID, userID string) error {
	u := fmt.Sprintf("%s/ticketing/matches/%s/seats/cancel?userId=%s",
		c.baseURL, url.PathEscape(matchID), url.QueryEscape(userID))
	return c.do(ctx, http.MethodDelete, u, nil, http.StatusOK, nil)
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader, wantStatus int, out any) error {
	req, err := c.newRequest(ctx, method, u, body)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("チケッティングAPIへの要求に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%w: %s %s -> %d", ErrUnexpectedStatus, method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("応答の解析に失敗: %w", err)
	}
	return nil
}
