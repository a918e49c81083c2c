package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T) (*httptest.Server, *GameController) {
	t.Helper()
	controller := NewGameController(humanVsHumanSettings())
	hub := NewHub()
	server := httptest.NewServer(newRouter(controller, hub))
	t.Cleanup(server.Close)
	return server, controller
}

func TestPingEndpoint(t *testing.T) {
	server, _ := testServer(t)
	resp, err := http.Get(server.URL + "/api/ping")
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ping returned %d", resp.StatusCode)
	}
	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode ping: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("ping should report ok")
	}
}

func TestStatusEndpoint(t *testing.T) {
	server, controller := testServer(t)
	controller.StartGame(humanVsHumanSettings())

	resp, err := http.Get(server.URL + "/api/status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	defer resp.Body.Close()
	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Cols != 7 || status.Rows != 6 {
		t.Fatalf("unexpected geometry %dx%d", status.Cols, status.Rows)
	}
	if status.Status != "running" {
		t.Fatalf("started game should report running, got %q", status.Status)
	}
	if len(status.Board) != 6 || len(status.Board[0]) != 7 {
		t.Fatalf("board payload has wrong shape")
	}
}

func TestSuggestEndpoint(t *testing.T) {
	server, controller := testServer(t)
	controller.StartGame(humanVsHumanSettings())

	resp, err := http.Get(server.URL + "/api/suggest")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("suggest returned %d", resp.StatusCode)
	}
	var suggestion suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&suggestion); err != nil {
		t.Fatalf("decode suggestion: %v", err)
	}
	if suggestion.Move.X != 3 || suggestion.Move.Y != 5 {
		t.Fatalf("fresh game suggestion should be the center drop, got %+v", suggestion.Move)
	}
}

func TestCacheStatusEndpoint(t *testing.T) {
	server, _ := testServer(t)
	resp, err := http.Get(server.URL + "/api/cache/tt")
	if err != nil {
		t.Fatalf("cache status failed: %v", err)
	}
	defer resp.Body.Close()
	var status ttCacheStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode cache status: %v", err)
	}
	if status.Capacity <= 0 {
		t.Fatalf("cache capacity should be positive, got %d", status.Capacity)
	}
}
