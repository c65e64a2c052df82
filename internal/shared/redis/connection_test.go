package redis

import (
	"context"
	"testing"

	"starforge/internal/shared/config"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RedisConfig
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{"host and port", config.RedisConfig{Host: "cache", Port: "6380", DB: 2}, "cache:6380", 2, false},
		{"url wins", config.RedisConfig{URL: "redis://:pw@example.com:6379/5", Host: "ignored", Port: "1"}, "example.com:6379", 5, false},
		{"bad url", config.RedisConfig{URL: "http://example.com"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Options(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Options returned error: %v", err)
			}
			if opts.Addr != tt.wantAddr || opts.DB != tt.wantDB {
				t.Errorf("addr %s db %d, want %s db %d", opts.Addr, opts.DB, tt.wantAddr, tt.wantDB)
			}
		})
	}
}

func TestConnectDisabled(t *testing.T) {
	client, err := Connect(context.Background(), config.RedisConfig{Enabled: false})
	if err != nil || client != nil {
		t.Fatalf("got %v, %v; want nil, nil", client, err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client returned %v", err)
	}
}
