package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Services  struct {
		Sessions struct {
			Status string `json:"status"`
			Active int    `json:"active"`
		} `json:"sessions"`
	} `json:"services"`
}

// Usage: health-test [url] [attempts]
func main() {
	url := "http://localhost:8080/health"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	attempts := 1
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 {
			fmt.Printf("❌ Invalid attempt count: %s\n", os.Args[2])
			os.Exit(2)
		}
		attempts = n
	}

	client := &http.Client{Timeout: 10 * time.Second}

	var health *healthResponse
	var err error
	for i := 1; i <= attempts; i++ {
		fmt.Printf("🔍 Checking %s (attempt %d/%d)\n", url, i, attempts)
		if health, err = checkHealth(client, url); err == nil {
			break
		}
		fmt.Printf("   %v\n", err)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		fmt.Printf("❌ Health check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Server is healthy\n")
	fmt.Printf("   Version:  %s\n", health.Version)
	fmt.Printf("   Sessions: %s, %d active\n", health.Services.Sessions.Status, health.Services.Sessions.Active)
	fmt.Printf("   Checked:  %s\n", health.Timestamp)
}

func checkHealth(client *http.Client, url string) (*healthResponse, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	var health healthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if health.Status != "ok" {
		return nil, fmt.Errorf("status field is %q", health.Status)
	}
	return &health, nil
}
