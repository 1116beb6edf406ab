package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osr/pkg/replay"
	"github.com/ssargent/osr/pkg/storage"
)

const testAPIKey = "test-key"

// memArchive is an in-memory ReplayArchive
type memArchive struct {
	mu   sync.Mutex
	data map[ksuid.KSUID][]byte
	ids  []ksuid.KSUID
}

func newMemArchive() *memArchive {
	return &memArchive{data: map[ksuid.KSUID][]byte{}}
}

func (a *memArchive) Put(data []byte) (ksuid.KSUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := ksuid.New()
	a.data[id] = bytes.Clone(data)
	a.ids = append(a.ids, id)
	return id, nil
}

func (a *memArchive) Get(id ksuid.KSUID) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.data[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return d, nil
}

func (a *memArchive) Delete(id ksuid.KSUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.data[id]; !ok {
		return storage.ErrNotFound
	}
	delete(a.data, id)
	for i, v := range a.ids {
		if v == id {
			a.ids = append(a.ids[:i], a.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (a *memArchive) List(limit int) ([]ksuid.KSUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := append([]ksuid.KSUID(nil), a.ids...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type testEnv struct {
	server  *Server
	handler http.Handler
	archive ReplayArchive
	reg     *prometheus.Registry
}

func setupTestServer(t *testing.T, archive ReplayArchive) *testEnv {
	t.Helper()
	if archive == nil {
		archive = newMemArchive()
	}
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	server := NewServer(archive, nil, ServerConfig{APIKey: testAPIKey}, metrics, zerolog.Nop())
	return &testEnv{
		server:  server,
		handler: NewRouter(server, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		archive: archive,
		reg:     reg,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(apiKeyHeader, testAPIKey)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

// decodeData decodes an APIResponse envelope and unmarshals its data into v
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) APIResponse {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
	if v != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return APIResponse{Success: raw.Success, Error: raw.Error}
}

func sampleOSR(t *testing.T) []byte {
	t.Helper()
	seed := int32(4242)
	rep := &replay.Replay{
		Mode:        replay.ModeStandard,
		Version:     20230101,
		BeatmapHash: "b1",
		PlayerName:  "cookiezi",
		ReplayHash:  "r1",
		Count300:    100,
		Score:       123456,
		MaxCombo:    150,
		Mods:        replay.ModHidden,
		LifeBar:     []replay.LifeBarFrame{{Time: 0, Percentage: 1}},
		Events: []replay.ReplayEvent{
			replay.StandardEvent{X: 10, Y: 20, TimeDelta: 16, Keys: replay.KeyM1},
			replay.StandardEvent{X: 11, Y: 21, TimeDelta: 17},
		},
		ReplayID: replay.WideReplayID(555),
		Seed:     &seed,
	}
	data, err := replay.Encode(rep)
	require.NoError(t, err)
	return data
}
