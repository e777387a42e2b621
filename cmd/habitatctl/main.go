// Command habitatctl drives a Habitat session over the HTTP API: it searches
// for a city, optionally picks a neighborhood and prints the resulting view.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	_ = godotenv.Load()

	defaultServer := os.Getenv("HABITAT_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	server := flag.String("server", defaultServer, "Base URL of the Habitat API")
	city := flag.String("city", "", "City to search for")
	fahrenheit := flag.Bool("fahrenheit", false, "Display temperatures in Fahrenheit")
	neighborhood := flag.String("neighborhood", "", "Neighborhood to unlock discounts for")
	flag.Parse()

	if strings.TrimSpace(*city) == "" {
		fmt.Fprintln(os.Stderr, "usage: habitatctl -city NAME [-server URL] [-fahrenheit] [-neighborhood NAME]")
		os.Exit(2)
	}

	c := &client{
		baseURL: strings.TrimRight(*server, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	if err := run(c, *city, *fahrenheit, *neighborhood); err != nil {
		fmt.Fprintf(os.Stderr, "habitatctl: %v\n", err)
		os.Exit(1)
	}
}

func run(c *client, city string, fahrenheit bool, neighborhood string) error {
	var view map[string]any
	if err := c.do(http.MethodPost, "/api/sessions", nil, http.StatusCreated, &view); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	id, _ := view["id"].(string)
	base := "/api/sessions/" + url.PathEscape(id)
	defer func() {
		if err := c.do(http.MethodDelete, base, nil, http.StatusNoContent, nil); err != nil {
			fmt.Fprintf(os.Stderr, "habitatctl: delete session: %v\n", err)
		}
	}()

	if fahrenheit {
		if err := c.do(http.MethodPut, base+"/unit", map[string]bool{"celsius": false}, http.StatusOK, &view); err != nil {
			return fmt.Errorf("set unit: %w", err)
		}
	}

	if err := c.do(http.MethodPost, base+"/search", map[string]string{"query": city}, http.StatusOK, &view); err != nil {
		return fmt.Errorf("search %q: %w", city, err)
	}

	if neighborhood != "" {
		if err := c.do(http.MethodPost, base+"/neighborhood", map[string]string{"neighborhood": neighborhood}, http.StatusOK, &view); err != nil {
			return fmt.Errorf("select neighborhood %q: %w", neighborhood, err)
		}
	}

	pretty, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

func (c *client) do(method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
