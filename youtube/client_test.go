package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/Soohyeuk/ChefPanda/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	return client, server
}

func TestSearch(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("type") != "video" {
			t.Errorf("type = %s, want video", r.URL.Query().Get("type"))
		}
		if r.URL.Query().Get("maxResults") != "3" {
			t.Errorf("maxResults = %s, want 3", r.URL.Query().Get("maxResults"))
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %s, want test-key", r.URL.Query().Get("key"))
		}

		w.Write([]byte(`{"items":[
			{"id":{"videoId":"vid1"},"snippet":{"title":"Pasta"}},
			{"id":{"videoId":"vid2"},"snippet":{"title":"Ramen"}}
		]}`))
	})
	defer server.Close()

	refs, err := client.Search(context.Background(), "cooking", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "cooking" {
		t.Errorf("query param = %q, want %q", gotQuery, "cooking")
	}
	if len(refs) != 2 {
		t.Fatalf("got %d references, want 2", len(refs))
	}
	if refs[0].ID != "vid1" || refs[0].Title != "Pasta" {
		t.Errorf("refs[0] = %+v, want vid1/Pasta", refs[0])
	}
	if refs[1].ID != "vid2" || refs[1].Title != "Ramen" {
		t.Errorf("refs[1] = %+v, want vid2/Ramen", refs[1])
	}
}

func TestChannelVideosOrderedByDate(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("channelId") != "UC123" {
			t.Errorf("channelId = %s, want UC123", r.URL.Query().Get("channelId"))
		}
		if r.URL.Query().Get("order") != "date" {
			t.Errorf("order = %s, want date", r.URL.Query().Get("order"))
		}
		w.Write([]byte(`{"items":[{"id":{"videoId":"new"},"snippet":{"title":"Newest"}}]}`))
	})
	defer server.Close()

	refs, err := client.ChannelVideos(context.Background(), "UC123", 200)
	if err != nil {
		t.Fatalf("ChannelVideos() error = %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "new" {
		t.Errorf("refs = %+v, want single 'new' reference", refs)
	}
}

func TestVideoLookup(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{
			name:     "existing video",
			response: `{"items":[{"id":"vid1","snippet":{"title":"Pasta"}}]}`,
			want:     1,
		},
		{
			name:     "unknown video",
			response: `{"items":[]}`,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/videos" {
					t.Errorf("path = %s, want /videos", r.URL.Path)
				}
				w.Write([]byte(tt.response))
			})
			defer server.Close()

			refs, err := client.Video(context.Background(), "vid1")
			if err != nil {
				t.Fatalf("Video() error = %v", err)
			}
			if len(refs) != tt.want {
				t.Errorf("got %d references, want %d", len(refs), tt.want)
			}
		})
	}
}

func TestChannelIDByHandleStripsAt(t *testing.T) {
	var lookups []string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		lookups = append(lookups, r.URL.Query().Get("forHandle"))
		w.Write([]byte(`{"items":[{"id":"UC456"}]}`))
	})
	defer server.Close()

	for _, handle := range []string{"@TryToEat", "TryToEat"} {
		id, err := client.ChannelIDByHandle(context.Background(), handle)
		if err != nil {
			t.Fatalf("ChannelIDByHandle(%q) error = %v", handle, err)
		}
		if id != "UC456" {
			t.Errorf("channel id = %s, want UC456", id)
		}
	}

	if len(lookups) != 2 || lookups[0] != lookups[1] {
		t.Errorf("lookup arguments = %v, want identical for both forms", lookups)
	}
	if lookups[0] != "TryToEat" {
		t.Errorf("lookup argument = %q, want %q", lookups[0], "TryToEat")
	}
}

func TestChannelIDByHandleNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})
	defer server.Close()

	_, err := client.ChannelIDByHandle(context.Background(), "@ghost")
	if err == nil {
		t.Fatal("ChannelIDByHandle() succeeded for unknown handle")
	}
	if !apperrors.IsNotFound(err) {
		t.Errorf("error kind = %v, want not found", err)
	}
}

func TestGetNonOKStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	if _, err := client.Search(context.Background(), "cooking", 5); err == nil {
		t.Error("Search() succeeded on 403 response")
	}
}
