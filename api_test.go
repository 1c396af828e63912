package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPlayClientSave(t *testing.T) {
	var got SaveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/play/save" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		w.Write([]byte(`{"status": "success", "id": 42}`))
	}))
	defer srv.Close()

	id, err := NewPlayClient(srv.URL+"/").Save(context.Background(), SaveRequest{
		Name:        "  Horns  ",
		Description: "set play",
		DiagramData: `{"version":1,"objects":[]}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "42" {
		t.Errorf("id = %q, want 42", id)
	}
	diff(t, SaveRequest{Name: "Horns", Description: "set play", DiagramData: `{"version":1,"objects":[]}`}, got)
}

func TestPlayClientSaveErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": "error", "message": "name taken"}`))
	}))
	defer srv.Close()
	client := NewPlayClient(srv.URL)

	if _, err := client.Save(context.Background(), SaveRequest{Name: "   "}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
	if calls != 0 {
		t.Error("empty name reached the server")
	}

	_, err := client.Save(context.Background(), SaveRequest{Name: "Horns"})
	if !errors.Is(err, ErrSaveRejected) {
		t.Fatalf("got %v, want ErrSaveRejected", err)
	}
	if want := "save rejected: name taken"; err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestPlayClientLoad(t *testing.T) {
	const diagram = `{"version":1,"objects":[]}`
	tests := []struct {
		name string
		body string
	}{
		{"string diagram", `{"id": "7", "name": "Horns", "description": "d", "diagram_data": "{\"version\":1,\"objects\":[]}"}`},
		{"object diagram", `{"id": 7, "name": "Horns", "description": "d", "diagram_data": {"version":1,"objects":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/play/7" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			play, err := NewPlayClient(srv.URL).Load(context.Background(), "7")
			if err != nil {
				t.Fatal(err)
			}
			if play.ID != "7" || play.Name != "Horns" || play.Description != "d" {
				t.Errorf("play = %+v", play)
			}
			var doc, want DiagramDocument
			if err := json.Unmarshal(play.DiagramData, &doc); err != nil {
				t.Fatal(err)
			}
			json.Unmarshal([]byte(diagram), &want)
			diff(t, want, doc)
		})
	}
}

func TestPlayClientLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"missing diagram", http.StatusOK, `{"id": 1, "name": "x"}`, ErrNoDiagram},
		{"null diagram", http.StatusOK, `{"id": 1, "diagram_data": null}`, ErrNoDiagram},
		{"empty string diagram", http.StatusOK, `{"id": 1, "diagram_data": ""}`, ErrNoDiagram},
		{"not found", http.StatusNotFound, `{"error": "no such play"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewPlayClient(srv.URL).Load(context.Background(), "1")
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
