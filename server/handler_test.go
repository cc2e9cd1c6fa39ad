package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"gridroute/core"
	"gridroute/pathfinding"
)

const routeMessage = `{
	"type": "route",
	"id": "c1",
	"request": {
		"source": {"x": 40, "y": 150, "width": 100, "height": 50},
		"sourceSide": "bottom",
		"target": {"x": 800, "y": 300, "width": 200, "height": 200},
		"targetSide": "bottom"
	}
}`

func exampleRequest() pathfinding.Request {
	return pathfinding.Request{
		Source:     core.Shape{X: 40, Y: 150, Width: 100, Height: 50},
		SourceSide: core.Bottom,
		Target:     core.Shape{X: 800, Y: 300, Width: 200, Height: 200},
		TargetSide: core.Bottom,
	}
}

func testOptions() []pathfinding.Option {
	return []pathfinding.Option{
		pathfinding.WithStep(27),
		pathfinding.WithAnchorOffset(30),
		pathfinding.WithMapSize(1200, 800),
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *pathfinding.CachedRouter) {
	t.Helper()
	router := pathfinding.NewCachedRouter(16)
	handler := NewHTTPHandler(router, HandlerConfig{
		Logger:  log.New(io.Discard, "", 0),
		Options: testOptions(),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, router
}

func websocketURL(t *testing.T, baseURL string) string {
	t.Helper()

	parsed, err := url.Parse(baseURL)
	require.NoError(t, err)
	parsed.Scheme = "ws"
	parsed.Path = "/ws"
	return parsed.String()
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL), nil)
	if resp != nil {
		t.Cleanup(func() { resp.Body.Close() })
	}
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg string) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &reply))
	return reply
}

func field[T any](t *testing.T, reply map[string]json.RawMessage, key string) T {
	t.Helper()
	var v T
	raw, ok := reply[key]
	require.True(t, ok, "reply has no %q field", key)
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHandle_RouteMatchesDirectRouter(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	reply := roundTrip(t, conn, routeMessage)

	direct, err := pathfinding.NewRouter(exampleRequest(), testOptions()...)
	require.NoError(t, err)
	want := direct.FindPath()

	require.Equal(t, TypePath, field[string](t, reply, "type"))
	require.Equal(t, "c1", field[string](t, reply, "id"))
	require.Equal(t, want.Found, field[bool](t, reply, "found"))
	require.Equal(t, want.Expanded, field[int](t, reply, "expanded"))
	require.Equal(t, want.Points, field[[]core.Point](t, reply, "points"))
}

func TestHandle_RepeatedRequestHitsCache(t *testing.T) {
	srv, router := newTestServer(t)
	conn := dial(t, srv)

	first := roundTrip(t, conn, routeMessage)
	second := roundTrip(t, conn, routeMessage)
	require.JSONEq(t, string(first["points"]), string(second["points"]))

	hits, misses, _, size := router.Cache().Stats()
	require.Equal(t, 1, hits)
	require.Equal(t, 1, misses)
	require.Equal(t, 1, size)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		id      string
		errPart string
	}{
		{"Malformed JSON", `{"type":`, "", "unexpected end"},
		{"Unknown type", `{"type":"ping","id":"p"}`, "p", `unknown message type "ping"`},
		{"Missing request", `{"type":"route","id":"r"}`, "r", "no request"},
		{"Unknown side", `{"type":"route","id":"s","request":{"sourceSide":"middle"}}`, "", "unknown anchor side"},
		{
			"Invalid shape",
			`{"type":"route","id":"w","request":{"source":{"width":-1},"sourceSide":"top","targetSide":"top"}}`,
			"w",
			"invalid geometry",
		},
	}

	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := roundTrip(t, conn, tt.msg)
			require.Equal(t, TypeError, field[string](t, reply, "type"))
			require.Contains(t, field[string](t, reply, "error"), tt.errPart)
			if tt.id != "" {
				require.Equal(t, tt.id, field[string](t, reply, "id"))
			}
		})
	}
}

func TestHTTPHandler_Endpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	resp, err = http.Get(srv.URL + "/schema")
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schema))
	resp.Body.Close()
	require.Equal(t, "gridroute scene", schema["title"])

	conn := dial(t, srv)
	roundTrip(t, conn, routeMessage)

	resp, err = http.Get(srv.URL + "/stats")
	require.NoError(t, err)
	var stats statsMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	require.Equal(t, statsMessage{Status: "ok", Misses: 1, Size: 1}, stats)
}

func TestHandle_RejectsPlainHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
