package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"seatmap_manager/model"
	"seatmap_manager/reconcile"
)

var (
	_ reconcile.Store         = (*Client)(nil)
	_ reconcile.SeatMapFinder = (*Client)(nil)
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

type fakeSession struct {
	token        string
	unauthorized int
}

func (s *fakeSession) Token() string { return s.token }
func (s *fakeSession) Unauthorized() { s.unauthorized++ }

// newServer trả về server httptest ghi lại request và trả status/body cố định theo path.
func newServer(t *testing.T, routes map[string]func() (int, string)) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization"), Body: body})
		mu.Unlock()
		route, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Không tìm thấy","error":"not found"}`))
			return
		}
		status, resp := route()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func fixed(status int, body string) func() (int, string) {
	return func() (int, string) { return status, body }
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "wrapped", body: `{"status":"success","data":{"id":7,"name":"Phòng 1"}}`, want: "Phòng 1"},
		{name: "bare", body: `{"id":7,"name":"Phòng 1"}`, want: "Phòng 1"},
		{name: "string", body: `"ok"`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
		{name: "wrapped wrong type", body: `{"data":[1,2]}`, wantErr: true},
		{name: "status without data", body: `{"status":1,"message":"ok"}`, wantErr: true},
		{name: "zero id", body: `{"data":{"id":0,"name":"Phòng 1"}}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode[model.SeatMap]([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResponseFormat) {
					t.Fatalf("decode() error = %v, want ErrInvalidResponseFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode() error = %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("Name = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestDecodeElementWithDataField(t *testing.T) {
	// element có trường "data" riêng, không được nhầm với phong bì
	el, err := decode[model.MapElement]([]byte(`{"id":3,"type":"rect","data":"stage-area-element","display":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if el.ID != 3 || el.Data != model.ElementStageArea {
		t.Errorf("element = %+v", el)
	}
	wrapped, err := decode[model.MapElement]([]byte(`{"status":"success","data":{"id":4,"data":"booked-seat-element"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if wrapped.ID != 4 || wrapped.Data != model.ElementBookedSeat {
		t.Errorf("wrapped element = %+v", wrapped)
	}
}

func TestGetSeatMapsByShowingId(t *testing.T) {
	srv, reqs := newServer(t, map[string]func() (int, string){
		"GET /api/v1/seat-map/showing/77": fixed(200, `{"status":"success","data":[{"id":900,"name":"Phòng 1","viewBox":"0 0 1200 800","sections":[{"id":501,"name":"Khu vực 1","status":1}]}]}`),
		"GET /api/v1/seat-map/showing/78": fixed(200, `{"status":"success","data":null}`),
	})
	sess := &fakeSession{token: "abc"}
	c := New(Config{BaseURL: srv.URL + "/", Session: sess})

	maps, err := c.GetSeatMapsByShowingId(context.Background(), 77)
	if err != nil {
		t.Fatal(err)
	}
	if len(maps) != 1 || maps[0].ID != 900 || len(maps[0].Sections) != 1 || maps[0].Sections[0].ID != 501 {
		t.Fatalf("maps = %+v", maps)
	}
	if (*reqs)[0].Query != "all=1" {
		t.Errorf("query = %q, want all=1", (*reqs)[0].Query)
	}
	if (*reqs)[0].Auth != "Bearer abc" {
		t.Errorf("Authorization = %q", (*reqs)[0].Auth)
	}

	empty, err := c.GetSeatMapsByShowingId(context.Background(), 78)
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty showing = %#v, want empty slice", empty)
	}
}

func TestDecodeSectionWithoutID(t *testing.T) {
	if _, err := decode[model.Section]([]byte(`{"status":1,"message":"ok"}`)); !errors.Is(err, ErrInvalidResponseFormat) {
		t.Fatalf("decode() error = %v, want ErrInvalidResponseFormat", err)
	}
	// danh sách không có id riêng nên mảng rỗng vẫn hợp lệ
	if seats, err := decode[[]model.Seat]([]byte(`{"data":[]}`)); err != nil || len(seats) != 0 {
		t.Fatalf("decode() = %v, %v", seats, err)
	}
}

func TestFindSeatMap(t *testing.T) {
	srv, reqs := newServer(t, map[string]func() (int, string){
		"GET /api/v1/seat-map/900": fixed(200, `{"status":"success","data":{"id":900,"name":"Phòng 1","status":0}}`),
	})
	c := New(Config{BaseURL: srv.URL})

	sm, err := c.FindSeatMap(context.Background(), 900)
	if err != nil {
		t.Fatal(err)
	}
	if sm == nil || sm.ID != 900 {
		t.Fatalf("seat map = %+v", sm)
	}
	if (*reqs)[0].Query != "all=1" {
		t.Errorf("query = %q, want all=1", (*reqs)[0].Query)
	}

	missing, err := c.FindSeatMap(context.Background(), 901)
	if err != nil || missing != nil {
		t.Fatalf("FindSeatMap(901) = %+v, %v, want nil, nil", missing, err)
	}
}

func TestCreateSectionSendsInput(t *testing.T) {
	srv, reqs := newServer(t, map[string]func() (int, string){
		"POST /api/v1/section": fixed(201, `{"status":"success","data":{"id":502,"seatMapId":900,"name":"Khu vực 2","status":1}}`),
	})
	c := New(Config{BaseURL: srv.URL})
	status := model.SectionActive
	sec, err := c.CreateSection(context.Background(), model.CreateSectionInput{SeatMapId: 900, Name: "Khu vực 2", IsSalable: true, Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if sec.ID != 502 {
		t.Errorf("section id = %d", sec.ID)
	}
	var sent model.CreateSectionInput
	if err := json.Unmarshal((*reqs)[0].Body, &sent); err != nil {
		t.Fatal(err)
	}
	if sent.Name != "Khu vực 2" || sent.SeatMapId != 900 || !sent.IsSalable {
		t.Errorf("sent = %+v", sent)
	}
	if (*reqs)[0].Auth != "" {
		t.Errorf("unexpected Authorization header %q", (*reqs)[0].Auth)
	}
}

func TestAPIErrors(t *testing.T) {
	srv, _ := newServer(t, map[string]func() (int, string){
		"PUT /api/v1/section/501": fixed(409, `{"message":"Loại vé đã được gắn cho khu vực khác","error":"duplicate ticket type"}`),
		"GET /api/v1/seat-map/1":  fixed(401, `{"message":"Unauthorized"}`),
		"GET /api/v1/seat-map/2":  fixed(200, `"ok"`),
	})
	sess := &fakeSession{token: "expired"}
	c := New(Config{BaseURL: srv.URL, Session: sess})

	_, err := c.UpdateSection(context.Background(), 501, model.UpdateSectionInput{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 409 {
		t.Fatalf("UpdateSection() error = %v", err)
	}
	if apiErr.Message != "Loại vé đã được gắn cho khu vực khác: duplicate ticket type" {
		t.Errorf("Message = %q", apiErr.Message)
	}

	if _, err := c.GetSeatMap(context.Background(), 1); !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Fatalf("GetSeatMap(1) error = %v", err)
	}
	if sess.unauthorized != 1 {
		t.Errorf("unauthorized hook called %d times", sess.unauthorized)
	}

	if _, err := c.GetSeatMap(context.Background(), 2); !errors.Is(err, ErrInvalidResponseFormat) {
		t.Errorf("GetSeatMap(2) error = %v, want ErrInvalidResponseFormat", err)
	}
}

func TestCanceledContext(t *testing.T) {
	srv, reqs := newServer(t, nil)
	c := New(Config{BaseURL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetSeatMap(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(*reqs) != 0 {
		t.Errorf("request sent after cancel")
	}
}

func TestSeatBatchAndHide(t *testing.T) {
	srv, reqs := newServer(t, map[string]func() (int, string){
		"POST /api/v1/seat/batch":                fixed(201, `{"status":"success","data":[{"id":1,"code":"A1","rowIndex":1,"colIndex":1,"status":"AVAILABLE"}]}`),
		"PATCH /api/v1/seat-map-element/9/display": fixed(200, `{"status":"success","data":{"id":9,"display":0}}`),
	})
	c := New(Config{BaseURL: srv.URL})
	seats, err := c.CreateSeatsBatch(context.Background(), model.CreateSeatsBatchInput{SectionId: 502, Rows: 1, Cols: 1, Overwrite: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(seats) != 1 || seats[0].Code != "A1" || seats[0].Status != model.SeatAvailable {
		t.Errorf("seats = %+v", seats)
	}
	if err := c.HideSeatMapElement(context.Background(), 9); err != nil {
		t.Fatal(err)
	}
	var sent model.UpdateStatusInput
	json.Unmarshal((*reqs)[1].Body, &sent)
	if sent.Status == nil || *sent.Status != model.ElementHidden {
		t.Errorf("display body = %s", (*reqs)[1].Body)
	}
}
