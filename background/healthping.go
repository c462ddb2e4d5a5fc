// Package background holds long-lived services that run outside the HTTP
// request cycle. Currently that is the health self-pinger, which keeps
// free-tier hosting from idling the process by hitting the health endpoint
// on a schedule.
package background

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/user/blogging-api-go/config"
)

const pingTimeout = 10 * time.Second

// StartHealthPinger launches the self-ping loop. It is a no-op when no ping
// URL is configured. Closing stopChan stops the loop; Wait on the returned
// WaitGroup to block until it has fully exited.
func StartHealthPinger(cfg *config.HealthPingConfig, stopChan <-chan struct{}) *sync.WaitGroup {
	var wg sync.WaitGroup
	if cfg == nil || cfg.PingURL == "" {
		return &wg
	}

	client := &http.Client{Timeout: pingTimeout}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer log.Println("Health pinger stopped.")

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Printf("Health pinger started: %s every %s", cfg.PingURL, cfg.Interval)
		for {
			select {
			case <-stopChan:
				return
			case <-ticker.C:
				ping(client, cfg.PingURL)
			}
		}
	}()

	return &wg
}

func ping(client *http.Client, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Health ping: failed to build request: %v", err)
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Health ping failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Health ping returned status %d", resp.StatusCode)
	}
}
