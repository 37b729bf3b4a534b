// Command adminctl is a small terminal console for the device admin API,
// built on the client library. It can log in, list any resource with
// search/filter/pagination, and download spreadsheet exports.
//
// Usage:
//
//	adminctl -base-url http://127.0.0.1:8080 login -email a@b.c -password secret
//	adminctl -token <jwt> list -resource devices -search iphone -page 2
//	adminctl -token <jwt> export -resource services -out services.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fixstack/deviceadmin/client"
)

var resourcePaths = map[string]string{
	"brands":   "/api/v1/brands",
	"colors":   "/api/v1/colors",
	"devices":  "/api/v1/devices",
	"services": "/api/v1/services",
	"plans":    "/api/v1/plans",
	"users":    "/api/v1/users",
}

// staticSession is a SessionStore holding a fixed token from the command line.
type staticSession struct {
	token string
}

func (s *staticSession) Token() string { return s.token }

func (s *staticSession) OnUnauthorized() {
	fmt.Fprintln(os.Stderr, "session rejected: token is missing, invalid, or expired")
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8080", "API base URL")
	token := flag.String("token", "", "bearer token")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*baseURL, client.WithSession(&staticSession{token: *token}))

	var err error
	switch args[0] {
	case "login":
		err = runLogin(c, args[1:])
	case "list":
		err = runList(c, args[1:])
	case "export":
		err = runExport(c, args[1:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "adminctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: adminctl [flags] login|list|export [command flags]")
	flag.PrintDefaults()
}

func runLogin(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	type tokenResponse struct {
		Token     string `json:"token"`
		ExpiresAt int64  `json:"expires_at"`
	}
	res := client.NewResource[tokenResponse](c, "/api/v1/auth/login")
	resp, err := res.Create(context.Background(), map[string]string{
		"email":    *email,
		"password": *password,
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Token)
	return nil
}

func runList(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	resource := fs.String("resource", "devices", "resource to list")
	search := fs.String("search", "", "free-text search")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "rows per page")
	filters := fs.String("filter", "", "comma-separated key=value filters; key_min/key_max for ranges")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, ok := resourcePaths[*resource]
	if !ok {
		return fmt.Errorf("unknown resource %q", *resource)
	}

	query := client.NewQueryState()
	query.SetPageSize(*pageSize)
	query.SetSearch(*search)
	if err := applyFilters(query, *filters); err != nil {
		return err
	}
	if *page > 1 {
		// The server clamps out-of-range pages on its own; bypass the local
		// bounds check since no page count is known before the first fetch.
		query.UpdatePageCount(*page)
		query.SetPage(*page)
	}

	res := client.NewResource[map[string]any](c, path)
	result, err := res.List(context.Background(), query)
	if err != nil {
		return err
	}

	printRows(result)
	return nil
}

func runExport(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	resource := fs.String("resource", "devices", "resource to export")
	search := fs.String("search", "", "free-text search")
	filters := fs.String("filter", "", "comma-separated key=value filters")
	out := fs.String("out", "", "output file (defaults to <resource>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, ok := resourcePaths[*resource]
	if !ok {
		return fmt.Errorf("unknown resource %q", *resource)
	}

	query := client.NewQueryState()
	query.SetSearch(*search)
	if err := applyFilters(query, *filters); err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = *resource + ".xlsx"
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	res := client.NewResource[map[string]any](c, path)
	if err := res.Export(context.Background(), query, f); err != nil {
		os.Remove(outPath)
		return err
	}

	fmt.Println("exported to", outPath)
	return nil
}

// applyFilters parses "key=value,other_min=10" into the query state.
func applyFilters(query *client.QueryState, spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	for _, pair := range strings.Split(spec, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || key == "" {
			return fmt.Errorf("invalid filter %q: expected key=value", pair)
		}
		switch {
		case strings.HasSuffix(key, "_min"):
			query.SetRangeMin(strings.TrimSuffix(key, "_min"), value)
		case strings.HasSuffix(key, "_max"):
			query.SetRangeMax(strings.TrimSuffix(key, "_max"), value)
		default:
			query.SetFilter(key, value)
		}
	}
	return nil
}

func printRows(result *client.PagedResult[map[string]any]) {
	if len(result.Items) == 0 {
		fmt.Printf("no rows (page %d/%d, total %d)\n", result.Page, result.PageCount, result.Total)
		return
	}

	// Stable column order across rows.
	keys := make([]string, 0, len(result.Items[0]))
	for k := range result.Items[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(keys, "\t"))
	for _, row := range result.Items {
		cells := make([]string, 0, len(keys))
		for _, k := range keys {
			cells = append(cells, fmt.Sprintf("%v", row[k]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	fmt.Fprintf(w, "page %d/%d, total %d\n", result.Page, result.PageCount, result.Total)
	w.Flush()
}
