// cmd/cli prints the current target statuses from a running instance.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"
)

type statusEntry struct {
	IP      string   `json:"ip"`
	Status  string   `json:"status"`
	Last    *string  `json:"last"`
	Latency *float64 `json:"latency"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://127.0.0.1:5000"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(api + "/api/status")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, "unexpected status:", resp.Status)
		os.Exit(1)
	}

	var statuses map[string]statusEntry
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		fmt.Fprintln(os.Stderr, "bad response:", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tIP\tSTATUS\tLATENCY\tLAST CHECKED")
	for _, name := range names {
		s := statuses[name]
		lat := "-"
		if s.Latency != nil {
			lat = fmt.Sprintf("%.1f ms", *s.Latency)
		}
		last := "-"
		if s.Last != nil {
			last = *s.Last
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, s.IP, s.Status, lat, last)
	}
	_ = w.Flush()
}
