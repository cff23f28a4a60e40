package connection

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		apiURL  string
		token   string
		want    string
		wantErr bool
	}{
		{
			name:   "http becomes ws",
			apiURL: "http://localhost:8000",
			token:  "",
			want:   "ws://localhost:8000/ws/events",
		},
		{
			name:   "https becomes wss",
			apiURL: "https://api.board.example",
			token:  "",
			want:   "wss://api.board.example/ws/events",
		},
		{
			name:   "token appended as query param",
			apiURL: "https://api.board.example",
			token:  "abc123",
			want:   "wss://api.board.example/ws/events?token=abc123",
		},
		{
			name:   "token is url encoded",
			apiURL: "http://localhost:8000",
			token:  "a b+c/d",
			want:   "ws://localhost:8000/ws/events?token=a+b%2Bc%2Fd",
		},
		{
			name:   "trailing slash collapsed",
			apiURL: "http://localhost:8000/",
			token:  "",
			want:   "ws://localhost:8000/ws/events",
		},
		{
			name:   "base path preserved",
			apiURL: "https://board.example/api",
			token:  "",
			want:   "wss://board.example/api/ws/events",
		},
		{
			name:   "ws scheme passes through",
			apiURL: "ws://localhost:8000",
			token:  "",
			want:   "ws://localhost:8000/ws/events",
		},
		{
			name:    "unsupported scheme rejected",
			apiURL:  "ftp://board.example",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.apiURL, "/ws/events", tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildURL(%q) succeeded, want error", tt.apiURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildURL(%q) failed: %v", tt.apiURL, err)
			}
			if got != tt.want {
				t.Errorf("BuildURL(%q) = %q, want %q", tt.apiURL, got, tt.want)
			}
		})
	}
}
