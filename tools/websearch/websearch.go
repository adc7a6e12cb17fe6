// Package websearch implements the search_internet tool on the Tavily API.
package websearch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"

	"github.com/cockroachdb/errors"
	tavilygo "github.com/diverged/tavily-go"
	tavilyModels "github.com/diverged/tavily-go/models"

	"github.com/denali-labs/reagent/schema"
	"github.com/denali-labs/reagent/tools"
)

const ToolName = "search_internet"

const apikeyEnvVarName = "TAVILY_API_KEY"

// SearchRequest represents the tool input.
type SearchRequest struct {
	Query string `json:"Query" jsonschema:"title=Query,description=The query to search web."`
}

// SearchResult represents the structure for a search response
type SearchResult struct {
	Results []tavilyModels.SearchResult `json:"results"`
	Answer  string                      `json:"answer,omitempty"`
}

// Tool is a tool that provides a web search functionality
type Tool struct {
	name        string
	description string
	funcParams  any

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[SearchRequest, SearchResult] = (*Tool)(nil)

func New() (*Tool, error) {
	apikey := os.Getenv(apikeyEnvVarName)
	if apikey == "" {
		return nil, errors.Newf("%s is not set", apikeyEnvVarName)
	}

	sc, err := schema.New(reflect.TypeOf(SearchRequest{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "Search the internet for information; use this to find sources or URLs.",
		httpClient:  http.DefaultClient,
		funcParams:  sc.Parameters,
	}, nil
}

func (t *Tool) WithBaseURL(baseURL string) *Tool {
	t.baseURL = baseURL
	return t
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

func (t *Tool) Run(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req.Query == "" {
		return nil, errors.New("invalid request: empty query")
	}

	client := tavilygo.NewClient(os.Getenv(apikeyEnvVarName))
	if t.baseURL != "" {
		client.BaseURL = t.baseURL
	}
	if t.httpClient != nil {
		client.HTTPClient = t.httpClient
	}

	searchReq := tavilyModels.SearchRequest{
		Query:         req.Query,
		SearchDepth:   "basic",
		MaxResults:    5,
		IncludeAnswer: true,
	}

	searchResp, err := tavilygo.Search(client, searchReq)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to perform search")
	}

	return &SearchResult{
		Results: searchResp.Results,
		Answer:  searchResp.Answer,
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	req := SearchRequest{
		Query: tools.StringArg(input, "Query"),
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	if len(res.Results) == 0 && res.Answer == "" {
		return "No relevant information or search results found.", nil
	}
	return res.String(), nil
}

// String renders the results one per line for the model to consume.
func (r *SearchResult) String() string {
	var buf bytes.Buffer
	if r.Answer != "" {
		fmt.Fprintf(&buf, "ANSWER: %s\n", r.Answer)
	}
	for _, result := range r.Results {
		fmt.Fprintf(&buf, "- %s: %s <%s>\n", result.Title, result.Content, result.URL)
	}
	return buf.String()
}
