package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-sim-registration-api-server/config"
	"traffic-sim-registration-api-server/internal/registration"
	"traffic-sim-registration-api-server/internal/sink"
	"traffic-sim-registration-api-server/internal/socket"
)

type captureSink struct {
	mu   sync.Mutex
	recs []registration.Record
}

func (c *captureSink) Name() string { return "capture" }

func (c *captureSink) Emit(_ context.Context, rec registration.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, rec)
	return nil
}

func (c *captureSink) records() []registration.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]registration.Record(nil), c.recs...)
}

type captureNotifier struct {
	mu   sync.Mutex
	sent []sink.Notification
}

func (c *captureNotifier) Notify(_ string, n sink.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
}

func (c *captureNotifier) notifications() []sink.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sink.Notification(nil), c.sent...)
}

type testServer struct {
	router   *gin.Engine
	records  *captureSink
	notifier *captureNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Submission: config.SubmissionConfig{
			DelayMS:       10,
			SimulationURL: "https://twin.example.com/simulation",
		},
	}
	records := &captureSink{}
	notifier := &captureNotifier{}
	router := SetupRouter(cfg, registration.NewManager(), records, notifier, socket.NewHub())
	return &testServer{router: router, records: records, notifier: notifier}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) createSession(t *testing.T) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/v1/sessions/", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		SessionID string `json:"sessionID"`
		State     string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "editing", resp.State)
	return resp.SessionID
}

func (ts *testServer) fillValid(t *testing.T, id string) {
	t.Helper()
	fields := []struct{ field, value string }{
		{"ownerName", "Asha Rao"},
		{"phoneNumber", "9876543210"},
		{"age", "29"},
		{"city", "Hyderabad"},
		{"state", "Telangana"},
	}
	for _, f := range fields {
		w := ts.do(t, http.MethodPatch, "/api/v1/sessions/"+id+"/fields",
			gin.H{"field": f.field, "value": f.value})
		require.Equal(t, http.StatusOK, w.Code, "field %s", f.field)
	}
	w := ts.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/gender", gin.H{"gender": "female"})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/vehicles/bike/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPatch, "/api/v1/sessions/"+id+"/vehicles/bike",
		gin.H{"registrationNumber": "TS09AB1234"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFullSubmissionFlow(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)
	ts.fillValid(t, id)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	// The record becomes readable once the simulated round-trip completes.
	require.Eventually(t, func() bool {
		return ts.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/record", nil).Code == http.StatusOK
	}, time.Second, 5*time.Millisecond)

	w = ts.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/record", nil)
	var rec registration.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, 29, rec.PersonalInfo.Age)
	assert.Equal(t, []registration.VehicleRecord{{Type: registration.SlotBike, Number: "TS09AB1234"}}, rec.Vehicles)

	recs := ts.records.records()
	require.Len(t, recs, 1)
	assert.Equal(t, rec.RecordID, recs[0].RecordID)

	// The success toast was pushed.
	require.Eventually(t, func() bool { return len(ts.notifier.notifications()) == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, ts.notifier.notifications()[0].Destructive)
}

func TestSubmitMissingFieldReturns422(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MissingRequiredField", resp.Error)
	assert.Equal(t, "ownerName", resp.Field)
	assert.Contains(t, resp.Message, "Owner Name")

	notifs := ts.notifier.notifications()
	require.Len(t, notifs, 1)
	assert.True(t, notifs[0].Destructive)

	// The session stays editable.
	w = ts.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"editing"`)
}

func TestDoubleSubmitReturnsConflict(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)
	ts.fillValid(t, id)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	w = ts.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	require.Eventually(t, func() bool {
		return ts.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/record", nil).Code == http.StatusOK
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, ts.records.records(), 1)
}

func TestRecordBeforeSuccessReturnsConflict(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)
	w := ts.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/record", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnknownSessionReturns404(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/v1/sessions/SES-MISSING", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidGenderReturns400(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)
	w := ts.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/gender", gin.H{"gender": "unknown"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomTypeOnWrongSlotReturns400(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)
	w := ts.do(t, http.MethodPatch, "/api/v1/sessions/"+id+"/vehicles/bike",
		gin.H{"customType": "scooter"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLaunchSimulationRedirects(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/v1/simulation", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://twin.example.com/simulation", w.Header().Get("Location"))
}

func TestGetOptionsListsFixedChoices(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/v1/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Telangana")
	assert.Contains(t, w.Body.String(), "bike")
}

func TestUploadPictureUpdatesPreview(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createSession(t)

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("picture", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/picture", id), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	// The decode is asynchronous; poll the snapshot for the preview.
	require.Eventually(t, func() bool {
		resp := ts.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
		return bytes.Contains(resp.Body.Bytes(), []byte("data:image/png;base64,"))
	}, time.Second, 5*time.Millisecond)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
