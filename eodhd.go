package stockfolio

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockfolio/date"
)

// This file implements PriceProvider and MetadataProvider on top of the
// EODHD REST API.

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read the environment variable \""+eodhdAPIKeyEnv+"\". You can get one at https://eodhd.com/")

// EodhdAPIKey resolves the API key from the flag or the environment.
func EodhdAPIKey() string {
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *eodhdAPIFlag
}

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// The key includes today's date, so the local cache expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client whose responses are cached on disk until the end
// of the day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// Eodhd fetches prices and metadata from the EODHD API. It implements
// PriceProvider and MetadataProvider.
type Eodhd struct {
	apiKey string
}

// NewEodhd returns a provider using the given API key, or the flag/env key
// when empty.
func NewEodhd(apiKey string) *Eodhd {
	if apiKey == "" {
		apiKey = EodhdAPIKey()
	}
	return &Eodhd{apiKey: apiKey}
}

// exchange suffix for plain ticker symbols. The ledger records US symbols.
const eodhdExchange = "US"

func eodhdTicker(instrument string) string {
	return url.PathEscape(instrument + "." + eodhdExchange)
}

// Daily returns the split-adjusted daily closing prices for the instrument.
func (e *Eodhd) Daily(ctx context.Context, instrument string, from, to date.Date) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/NVDA.US?api_token=...&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", eodhdTicker(instrument), e.apiKey, from, to)
	type info struct {
		Date  date.Date `json:"date"`
		Close float64   `json:"adjusted_close"`
	}

	content := make([]info, 0)
	if err := jwget(ctx, daily(), addr, &content); err != nil {
		return nil, err
	}

	prices := &date.History[float64]{}
	for _, i := range content {
		prices.Append(i.Date, i.Close)
	}
	return prices, nil
}

// Latest returns the most recent closing price for the instrument.
func (e *Eodhd) Latest(ctx context.Context, instrument string) (float64, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=...&fmt=json
	// { "code": "AAPL.US", "timestamp": 1709913600, "close": 170.73, ... }
	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s", eodhdTicker(instrument), e.apiKey)
	var payload struct {
		Close float64 `json:"close"`
	}
	// Real-time quotes must not be served from the daily cache.
	if err := jwget(ctx, new(http.Client), addr, &payload); err != nil {
		return 0, err
	}
	if payload.Close == 0 {
		return 0, fmt.Errorf("empty quote for %s", instrument)
	}
	return payload.Close, nil
}

// Name returns the company name from the fundamentals endpoint.
func (e *Eodhd) Name(ctx context.Context, instrument string) (string, error) {
	// https://eodhd.com/api/fundamentals/AAPL.US?filter=General&api_token=...&fmt=json
	// { "Code": "AAPL", "Name": "Apple Inc", "Sector": "Technology", ... }
	addr := fmt.Sprintf("https://eodhd.com/api/fundamentals/%s?filter=General&fmt=json&api_token=%s", eodhdTicker(instrument), e.apiKey)
	var jobj any
	if err := jwget(ctx, daily(), addr, &jobj); err != nil {
		return "", err
	}

	path := "$.Name"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing fundamentals of %q: %q %w", instrument, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call we keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	name, ok := jval.(string)
	if !ok || name == "" {
		return "", fmt.Errorf("fundamentals of %q carry no name", instrument)
	}
	return name, nil
}

var (
	_ PriceProvider    = (*Eodhd)(nil)
	_ MetadataProvider = (*Eodhd)(nil)
)
