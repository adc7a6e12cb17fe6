// Package webscrape implements the scrape_website tool: it fetches a page
// and reduces it to the visible text, skipping markup and boilerplate.
package webscrape

import (
	"context"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/denali-labs/reagent/llmutils"
	"github.com/denali-labs/reagent/schema"
	"github.com/denali-labs/reagent/tools"
)

const ToolName = "scrape_website"

// MaxContentSize caps the extracted text returned to the model.
const MaxContentSize = 8000

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Request represents the tool input.
type Request struct {
	URL string `json:"URL" jsonschema:"title=URL,description=The URL of the website to scrape."`
}

// Response carries the extracted page text.
type Response struct {
	Content string `json:"Content"`
}

// Tool fetches a web page and extracts its text content.
type Tool struct {
	name        string
	description string
	funcParams  any

	httpClient *http.Client
}

var _ tools.Tool[Request, Response] = (*Tool)(nil)

func New() (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "Scrape the content of a website by its URL; use after search_internet to read a source.",
		funcParams:  sc.Parameters,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (t *Tool) WithHTTPClient(client *http.Client) *Tool {
	t.httpClient = client
	return t
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	return t.funcParams
}

func (t *Tool) Run(ctx context.Context, req *Request) (*Response, error) {
	if req.URL == "" {
		return nil, errors.New("invalid request: empty URL")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to fetch URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("failed to fetch URL: status %d", resp.StatusCode)
	}

	text, err := extractText(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse HTML")
	}

	return &Response{Content: llmutils.Truncate(text, MaxContentSize)}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	req := Request{
		URL: tools.StringArg(input, "URL"),
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	if res.Content == "" {
		return "No readable content found on the page.", nil
	}
	return res.Content, nil
}

// elements whose text is never page content
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"header":   true,
	"footer":   true,
	"nav":      true,
	"iframe":   true,
}

func extractText(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)

	var sb strings.Builder
	skipDepth := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			err := tokenizer.Err()
			if errors.Is(err, io.EOF) {
				return strings.TrimSpace(sb.String()), nil
			}
			return "", err
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTags[string(name)] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTags[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(text)
		}
	}
}
