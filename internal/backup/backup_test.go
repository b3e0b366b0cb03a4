package backup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
)

// fakeDrive emulates the slice of the Drive v3 API the client uses.
type fakeDrive struct {
	fileID  string
	content []byte
	creates int
	updates int
}

func (f *fakeDrive) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		files := []map[string]string{}
		if f.fileID != "" {
			files = append(files, map[string]string{"id": f.fileID, "name": BackupFilename})
		}
		json.NewEncoder(w).Encode(map[string]any{"files": files})
	})
	mux.HandleFunc("GET /drive/v3/files/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write(f.content)
	})
	mux.HandleFunc("POST /drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.creates++
		f.fileID = "new-file"
		// Keep only the media part for Load round-trips.
		if i := strings.LastIndex(string(body), "{\"version\""); i >= 0 {
			end := strings.LastIndex(string(body), "}")
			f.content = body[i : end+1]
		}
		json.NewEncoder(w).Encode(map[string]string{"id": f.fileID})
	})
	mux.HandleFunc("PATCH /drive/v3/files/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.updates++
		f.content, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]string{"id": f.fileID})
	})
	return mux
}

func testClient(t *testing.T, drive *fakeDrive, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(drive.handler())
	t.Cleanup(srv.Close)
	return NewClient(Config{
		Token:     token,
		BaseURL:   srv.URL,
		UploadURL: srv.URL,
	}, zap.NewNop())
}

func testSnapshot() *Snapshot {
	cs := content.NewStore()
	cs.AddFlashcards([]content.Flashcard{{ID: "1", Subject: "Zoology", Concept: "c"}})
	ps := progress.NewStore()
	return NewSnapshot(cs, ps)
}

func TestSaveWithoutTokenFails(t *testing.T) {
	c := NewClient(DefaultConfig(), zap.NewNop())

	err := c.Save(context.Background(), testSnapshot())
	var noAuth *ErrNotAuthenticated
	require.ErrorAs(t, err, &noAuth)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	drive := &fakeDrive{}
	c := testClient(t, drive, "tok")

	require.NoError(t, c.Save(context.Background(), testSnapshot()))
	assert.Equal(t, 1, drive.creates)
	assert.Equal(t, 0, drive.updates)

	require.NoError(t, c.Save(context.Background(), testSnapshot()))
	assert.Equal(t, 1, drive.updates)
}

func TestLoadAbsentBackup(t *testing.T) {
	c := testClient(t, &fakeDrive{}, "tok")

	snap, ok, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, snap)
}

func TestLoadRoundTrip(t *testing.T) {
	data, err := json.Marshal(testSnapshot())
	require.NoError(t, err)
	drive := &fakeDrive{fileID: "f1", content: data}
	c := testClient(t, drive, "tok")

	snap, ok, err := c.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, snap.Flashcards, 1)
	assert.Equal(t, "Zoology", snap.Flashcards[0].Subject)
}

func TestLoadRejectsNewerMajor(t *testing.T) {
	snap := testSnapshot()
	snap.Version = "v2.0.0"
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	c := testClient(t, &fakeDrive{fileID: "f1", content: data}, "tok")

	_, _, err = c.Load(context.Background())
	require.Error(t, err)
}

func TestLoadUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(Config{Token: "expired", BaseURL: srv.URL, UploadURL: srv.URL}, zap.NewNop())

	_, _, err := c.Load(context.Background())
	var noAuth *ErrNotAuthenticated
	require.ErrorAs(t, err, &noAuth)
}

func TestSnapshotVersionChecks(t *testing.T) {
	cases := []struct {
		version string
		wantErr bool
	}{
		{SnapshotVersion, false},
		{"v0.9.0", false},
		{"v1.4.2", false},
		{"v2.0.0", true},
		{"garbage", true},
		{"", true},
	}
	for _, tc := range cases {
		s := &Snapshot{Version: tc.version}
		err := s.CheckVersion()
		if tc.wantErr {
			assert.Error(t, err, "version %q", tc.version)
		} else {
			assert.NoError(t, err, "version %q", tc.version)
		}
	}
}

func TestRestoreReplacesStores(t *testing.T) {
	snap := testSnapshot()
	cs := content.NewStore()
	cs.AddFlashcards([]content.Flashcard{{ID: "old", Subject: "Biology", Concept: "stale"}})
	ps := progress.NewStore()

	snap.Restore(cs, ps)

	cards, _ := cs.All()
	require.Len(t, cards, 1)
	assert.Equal(t, "Zoology", cards[0].Subject)
}
