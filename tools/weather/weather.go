// Package weather implements the get_weather tool on the weatherapi.com
// current-conditions endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/denali-labs/reagent/schema"
	"github.com/denali-labs/reagent/tools"
)

const ToolName = "get_weather"

const apikeyEnvVarName = "WEATHER_API_KEY"

const defaultBaseURL = "https://api.weatherapi.com/v1"

// Request represents the tool input.
type Request struct {
	Location string `json:"Location" jsonschema:"title=Location,description=The city or location to get the current weather for."`
}

// Response carries the current conditions for the requested location.
type Response struct {
	Location    string  `json:"Location"`
	TempC       float64 `json:"TempC"`
	Description string  `json:"Description"`
}

type apiResponse struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Tool reports current weather conditions.
type Tool struct {
	name        string
	description string
	funcParams  any

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[Request, Response] = (*Tool)(nil)

func New() (*Tool, error) {
	apikey := os.Getenv(apikeyEnvVarName)
	if apikey == "" {
		return nil, errors.Newf("%s is not set", apikeyEnvVarName)
	}

	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "Get the current weather for a given location.",
		funcParams:  sc.Parameters,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
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

func (t *Tool) Run(ctx context.Context, req *Request) (*Response, error) {
	if req.Location == "" {
		return nil, errors.New("invalid request: empty location")
	}

	q := url.Values{}
	q.Set("key", os.Getenv(apikeyEnvVarName))
	q.Set("q", req.Location)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to fetch weather")
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.WithMessage(err, "failed to decode weather response")
	}
	if apiResp.Error != nil {
		return nil, errors.Newf("weather API error: %s", apiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("failed to fetch weather: status %d", resp.StatusCode)
	}

	return &Response{
		Location:    req.Location,
		TempC:       apiResp.Current.TempC,
		Description: apiResp.Current.Condition.Text,
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	req := Request{
		Location: tools.StringArg(input, "Location"),
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func (r *Response) String() string {
	return fmt.Sprintf("The current temperature in %s is %s°C with %s.",
		r.Location, strconv.FormatFloat(r.TempC, 'f', -1, 64), r.Description)
}
