// Command seed drives a running arrows server with synthetic traffic:
// it logs in a batch of generated players, submits random score
// updates, and prints the resulting leaderboard.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultPlayers = 100
	defaultRounds  = 5
	defaultWorkers = 8
	defaultTimeout = 10 * time.Second
	defaultTopN    = 10
	maxLevel       = 30
	maxCoinsPerRun = 50
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the service")
		players = flag.Int("players", defaultPlayers, "Number of synthetic players")
		rounds  = flag.Int("rounds", defaultRounds, "Score submissions per player")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		topN    = flag.Int("top", defaultTopN, "Leaderboard entries to print afterwards")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	client := &http.Client{Timeout: *timeout}
	ctx := context.Background()

	ids := make([]string, *players)
	for i := range ids {
		ids[i] = uuid.New().String()
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if err := seedPlayer(ctx, client, *baseURL, id, *rounds); err != nil {
					fmt.Fprintf(os.Stderr, "player %s: %v\n", id, err)
				}
			}
		}()
	}
	start := time.Now()
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()
	fmt.Printf("seeded %d players x %d rounds in %s\n", *players, *rounds, time.Since(start).Round(time.Millisecond))

	if err := printLeaderboard(ctx, client, *baseURL, *topN); err != nil {
		fmt.Fprintf(os.Stderr, "leaderboard: %v\n", err)
		os.Exit(1)
	}
}

func seedPlayer(ctx context.Context, client *http.Client, baseURL, id string, rounds int) error {
	login := map[string]any{
		"user_id":  id,
		"username": "seed_" + id[:8],
	}
	if err := post(ctx, client, baseURL+"/api/user", login); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	for i := 0; i < rounds; i++ {
		score := map[string]any{
			"user_id":      id,
			"level":        rand.Intn(maxLevel) + 1,
			"coins_earned": rand.Intn(maxCoinsPerRun) + 1,
		}
		if err := post(ctx, client, baseURL+"/api/score", score); err != nil {
			return fmt.Errorf("score: %w", err)
		}
	}
	return nil
}

func post(ctx context.Context, client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func printLeaderboard(ctx context.Context, client *http.Client, baseURL string, topN int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/leaderboard?limit=%d", baseURL, topN), nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var view struct {
		Leaderboard []struct {
			Rank        int    `json:"rank"`
			DisplayName string `json:"username"`
			Score       int    `json:"score"`
			Coins       int64  `json:"coins"`
		} `json:"leaderboard"`
		TotalPlayers int `json:"total_players"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return err
	}
	fmt.Printf("total players: %d\n", view.TotalPlayers)
	for _, e := range view.Leaderboard {
		fmt.Printf("%3d. %-24s level=%-3d coins=%d\n", e.Rank, e.DisplayName, e.Score, e.Coins)
	}
	return nil
}
