// Package client gọi API seat map (/api/v1) bằng fiber Agent. Client cài đặt
// reconcile.Store cho luồng lưu và GetSeatMap cho phía người xem.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"seatmap_manager/model"
)

var ErrInvalidResponseFormat = errors.New("invalid response format")

// APIError là phản hồi không thành công từ server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Session cung cấp token và được báo khi server trả 401.
type Session interface {
	Token() string
	Unauthorized()
}

// StaticToken là Session dùng một token cố định (CLI, test).
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

func (StaticToken) Unauthorized() {}

type Config struct {
	BaseURL string
	Session Session
	Timeout time.Duration
}

type Client struct {
	baseURL string
	session Session
	timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/api/v1",
		session: cfg.Session,
		timeout: timeout,
	}
}

func (c *Client) agent(method, url string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return fiber.Post(url)
	case fiber.MethodPut:
		return fiber.Put(url)
	case fiber.MethodPatch:
		return fiber.Patch(url)
	case fiber.MethodDelete:
		return fiber.Delete(url)
	default:
		return fiber.Get(url)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a := c.agent(method, c.baseURL+path)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			a.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	if body != nil {
		a.JSON(body)
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	a.Timeout(timeout)

	status, resp, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	if status == fiber.StatusUnauthorized && c.session != nil {
		c.session.Unauthorized()
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: errorMessage(resp)}
	}
	return resp, nil
}

// errorMessage đọc {message, error} của utils.ErrorResponse, nếu có.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil {
		return strings.TrimSpace(string(body))
	}
	switch {
	case e.Message != "" && e.Error != "":
		return e.Message + ": " + e.Error
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

// identified là các entity có id do server cấp.
type identified interface {
	GetID() uint
}

// decode nhận cả {data: T} lẫn T trần. Entity (có GetID) phải mang id khác 0,
// nếu không thân phản hồi bị coi là sai định dạng.
func decode[T any](body []byte) (T, error) {
	var out T
	if trimmed := strings.TrimSpace(string(body)); trimmed == "" || trimmed == "null" {
		return out, ErrInvalidResponseFormat
	}
	var env map[string]json.RawMessage
	if json.Unmarshal(body, &env) == nil {
		if raw, ok := env["data"]; ok {
			if err := json.Unmarshal(raw, &out); err == nil && hasID(out) {
				return out, nil
			}
			out = *new(T)
		}
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidResponseFormat, err)
	}
	if !hasID(out) {
		return out, fmt.Errorf("%w: missing id", ErrInvalidResponseFormat)
	}
	return out, nil
}

func hasID(v any) bool {
	if e, ok := v.(identified); ok {
		return e.GetID() != 0
	}
	return true
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](raw)
}

func (c *Client) GetSeatMapsByShowingId(ctx context.Context, showingId uint) ([]model.SeatMap, error) {
	maps, err := call[[]model.SeatMap](ctx, c, fiber.MethodGet, fmt.Sprintf("/seat-map/showing/%d?all=1", showingId), nil)
	if err != nil {
		return nil, err
	}
	if maps == nil {
		maps = []model.SeatMap{}
	}
	return maps, nil
}

func (c *Client) GetSeatMap(ctx context.Context, id uint) (*model.SeatMap, error) {
	sm, err := call[model.SeatMap](ctx, c, fiber.MethodGet, fmt.Sprintf("/seat-map/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

// FindSeatMap lấy seat map theo id kể cả khi chưa kích hoạt; 404 trả về nil, nil.
func (c *Client) FindSeatMap(ctx context.Context, id uint) (*model.SeatMap, error) {
	sm, err := call[model.SeatMap](ctx, c, fiber.MethodGet, fmt.Sprintf("/seat-map/%d?all=1", id), nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == fiber.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

func (c *Client) CreateSeatMap(ctx context.Context, in model.CreateSeatMapInput) (*model.SeatMap, error) {
	return entity[model.SeatMap](ctx, c, fiber.MethodPost, "/seat-map", in)
}

func (c *Client) UpdateSeatMap(ctx context.Context, id uint, in model.UpdateSeatMapInput) (*model.SeatMap, error) {
	return entity[model.SeatMap](ctx, c, fiber.MethodPut, fmt.Sprintf("/seat-map/%d", id), in)
}

func (c *Client) UpdateSeatMapStatus(ctx context.Context, id uint, status model.SeatMapStatus) error {
	s := int(status)
	_, err := c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/seat-map/%d/status", id), model.UpdateStatusInput{Status: &s})
	return err
}

func (c *Client) CreateSection(ctx context.Context, in model.CreateSectionInput) (*model.Section, error) {
	return entity[model.Section](ctx, c, fiber.MethodPost, "/section", in)
}

func (c *Client) UpdateSection(ctx context.Context, id uint, in model.UpdateSectionInput) (*model.Section, error) {
	return entity[model.Section](ctx, c, fiber.MethodPut, fmt.Sprintf("/section/%d", id), in)
}

func (c *Client) CreateSectionAttribute(ctx context.Context, in model.SectionAttributeInput) (*model.SectionAttribute, error) {
	return entity[model.SectionAttribute](ctx, c, fiber.MethodPost, "/section-attribute", in)
}

func (c *Client) CreateSeatsBatch(ctx context.Context, in model.CreateSeatsBatchInput) ([]model.Seat, error) {
	return call[[]model.Seat](ctx, c, fiber.MethodPost, "/seat/batch", in)
}

func (c *Client) UpdateSeatStatus(ctx context.Context, in model.UpdateSeatStatusInput) ([]model.Seat, error) {
	return call[[]model.Seat](ctx, c, fiber.MethodPatch, "/seat/status", in)
}

func (c *Client) LockSeats(ctx context.Context, in model.LockSeatsInput) (*model.SeatLockResult, error) {
	return entity[model.SeatLockResult](ctx, c, fiber.MethodPost, "/seat/lock", in)
}

func (c *Client) ReleaseSeats(ctx context.Context, in model.ReleaseSeatsInput) ([]model.Seat, error) {
	return call[[]model.Seat](ctx, c, fiber.MethodPost, "/seat/release", in)
}

func (c *Client) CreateSeatMapElement(ctx context.Context, in model.MapElementInput) (*model.MapElement, error) {
	return entity[model.MapElement](ctx, c, fiber.MethodPost, "/seat-map-element", in)
}

func (c *Client) HideSeatMapElement(ctx context.Context, id uint) error {
	hidden := model.ElementHidden
	_, err := c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/seat-map-element/%d/display", id), model.UpdateStatusInput{Status: &hidden})
	return err
}

func entity[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	v, err := call[T](ctx, c, method, path, body)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
